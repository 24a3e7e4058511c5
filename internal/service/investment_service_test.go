package service

import (
	"context"
	"testing"

	"wealth_builder_backend/internal/repository"
	"wealth_builder_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvestmentService(t *testing.T) {
	svc := NewInvestmentService(repository.NewInvestmentRepository())

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, items)
	assert.Equal(t, 64, items[0].FundedPercent)

	item, err := svc.Get(context.Background(), items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, items[0].Title, item.Title)

	_, err = svc.Get(context.Background(), "unknown")
	assert.ErrorIs(t, err, util.ErrInvestmentNotFound)
}
