package service

import (
	"context"

	"wealth_builder_backend/internal/model"
)

type InvestmentService struct {
	Store InvestmentStore
}

func NewInvestmentService(store InvestmentStore) *InvestmentService {
	return &InvestmentService{Store: store}
}

// InvestmentView 投资机会及其筹资进度
type InvestmentView struct {
	model.Investment
	FundedPercent int `json:"fundedPercent"`
}

func (s *InvestmentService) List(ctx context.Context) ([]InvestmentView, error) {
	items, err := s.Store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]InvestmentView, 0, len(items))
	for _, inv := range items {
		out = append(out, InvestmentView{Investment: inv, FundedPercent: inv.FundedPercent()})
	}
	return out, nil
}

func (s *InvestmentService) Get(ctx context.Context, id string) (*InvestmentView, error) {
	inv, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &InvestmentView{Investment: *inv, FundedPercent: inv.FundedPercent()}, nil
}
