package repository

import (
	"context"

	"wealth_builder_backend/internal/model"
	"wealth_builder_backend/internal/util"
)

// InvestmentRepository 投资机会目录，目前为内置静态数据
type InvestmentRepository struct {
	catalog []model.Investment
}

func NewInvestmentRepository() *InvestmentRepository {
	return &InvestmentRepository{catalog: defaultInvestments}
}

func (r *InvestmentRepository) FindAll(ctx context.Context) ([]model.Investment, error) {
	out := make([]model.Investment, len(r.catalog))
	copy(out, r.catalog)
	return out, nil
}

func (r *InvestmentRepository) FindByID(ctx context.Context, id string) (*model.Investment, error) {
	for i := range r.catalog {
		if r.catalog[i].ID == id {
			inv := r.catalog[i]
			return &inv, nil
		}
	}
	return nil, util.ErrInvestmentNotFound
}

var defaultInvestments = []model.Investment{
	{
		ID:               "1",
		Title:            "Mama Njeri's Grocery Store",
		Description:      "Established neighborhood grocery looking to expand inventory and add refrigeration unit. Currently serves 200+ households in Nairobi with fresh produce and household essentials.",
		BusinessCategory: "Retail",
		AmountRequested:  50000,
		AmountRaised:     32000,
		ReturnRate:       12,
		Duration:         "6 months",
		RiskLevel:        model.RiskLow,
		BusinessPlan:     "Expand product range and add cold storage for dairy and beverages",
		MonthlyRevenue:   120000,
		ProfitMargin:     18,
	},
	{
		ID:               "2",
		Title:            "Boda Boda Fleet Expansion",
		Description:      "Registered boda boda business adding 3 motorcycles to meet demand in Eastlands area. Experienced riders with established customer base.",
		BusinessCategory: "Transportation",
		AmountRequested:  150000,
		AmountRaised:     45000,
		ReturnRate:       15,
		Duration:         "12 months",
		RiskLevel:        model.RiskMedium,
		BusinessPlan:     "Purchase 3 motorcycles and safety equipment for expansion",
		MonthlyRevenue:   180000,
		ProfitMargin:     25,
	},
	{
		ID:               "3",
		Title:            "Poultry Farm Setup",
		Description:      "Capital to build a coop and buy 500 chicks for a new poultry farm in Kiambu. Experienced farmer with land already secured.",
		BusinessCategory: "Agriculture",
		AmountRequested:  100000,
		AmountRaised:     65000,
		ReturnRate:       14,
		Duration:         "9 months",
		RiskLevel:        model.RiskMedium,
		BusinessPlan:     "Construct chicken coop, purchase chicks, and feed for first 3 months",
		MonthlyRevenue:   85000,
		ProfitMargin:     22,
	},
	{
		ID:               "4",
		Title:            "Beauty Salon Expansion",
		Description:      "Popular salon in Westlands looking to add hair treatment services and modern equipment. 5 years in business with loyal clientele.",
		BusinessCategory: "Beauty & Personal Care",
		AmountRequested:  80000,
		AmountRaised:     55000,
		ReturnRate:       13,
		Duration:         "8 months",
		RiskLevel:        model.RiskLow,
		BusinessPlan:     "Purchase professional hair treatment equipment and training for staff",
		MonthlyRevenue:   150000,
		ProfitMargin:     35,
	},
	{
		ID:               "5",
		Title:            "Tailoring Business Equipment",
		Description:      "Skilled tailor needs industrial sewing machines to take on larger orders from schools and businesses. Currently operating with 2 domestic machines.",
		BusinessCategory: "Manufacturing",
		AmountRequested:  60000,
		AmountRaised:     20000,
		ReturnRate:       16,
		Duration:         "10 months",
		RiskLevel:        model.RiskLow,
		BusinessPlan:     "Purchase 2 industrial sewing machines and overlock machine",
		MonthlyRevenue:   95000,
		ProfitMargin:     28,
	},
	{
		ID:               "6",
		Title:            "Mobile Phone Repair Shop",
		Description:      "Tech-savvy entrepreneur opening phone repair shop in busy market area. Certified technician with 3 years experience.",
		BusinessCategory: "Technology",
		AmountRequested:  70000,
		AmountRaised:     15000,
		ReturnRate:       18,
		Duration:         "6 months",
		RiskLevel:        model.RiskMedium,
		BusinessPlan:     "Rent shop space, purchase repair tools and initial spare parts inventory",
		MonthlyRevenue:   110000,
		ProfitMargin:     32,
	},
	{
		ID:               "7",
		Title:            "Fresh Juice Kiosk",
		Description:      "Starting a fresh juice and smoothie kiosk near university campus. Prime location with high foot traffic from students.",
		BusinessCategory: "Food & Beverage",
		AmountRequested:  45000,
		AmountRaised:     30000,
		ReturnRate:       14,
		Duration:         "5 months",
		RiskLevel:        model.RiskLow,
		BusinessPlan:     "Purchase commercial blender, refrigerator, and initial fruit inventory",
		MonthlyRevenue:   75000,
		ProfitMargin:     40,
	},
}
