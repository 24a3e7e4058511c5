package model

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Investment 可供浏览的小微企业投资机会（静态目录）
// swagger:model Investment
type Investment struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	BusinessCategory string    `json:"businessCategory"`
	AmountRequested  int64     `json:"amountRequested"`
	AmountRaised     int64     `json:"amountRaised"`
	ReturnRate       float64   `json:"returnRate"`
	Duration         string    `json:"duration"`
	RiskLevel        RiskLevel `json:"riskLevel"`
	BusinessPlan     string    `json:"businessPlan"`
	MonthlyRevenue   int64     `json:"monthlyRevenue"`
	ProfitMargin     float64   `json:"profitMargin"`
}

// FundedPercent 已筹资金百分比（取整）
func (i Investment) FundedPercent() int {
	if i.AmountRequested <= 0 {
		return 0
	}
	return int((i.AmountRaised*100 + i.AmountRequested/2) / i.AmountRequested)
}
