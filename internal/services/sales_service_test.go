package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circleops/salesops-backend/internal/database"
)

func setupSalesService(t *testing.T) (*SalesService, sqlmock.Sqlmock, *memoryCache) {
	db, mock := setupServiceDB(t)
	cache := newMemoryCache()
	return NewSalesService(database.NewSalesRepository(db), cache, quietLogger()), mock, cache
}

func TestFinanceSummary_ExactDecimalTotal(t *testing.T) {
	service, mock, cache := setupSalesService(t)

	mock.ExpectQuery(`FROM finance_collections WHERE 1=1 AND circle = \$1\s+GROUP BY category`).
		WithArgs("KERALA").
		WillReturnRows(sqlmock.NewRows([]string{"category", "count", "amount"}).
			AddRow("FTTH", 3, "0.10").
			AddRow("MOBILE", 7, "0.20").
			AddRow("ENTERPRISE", 1, "1234567.89"))

	summary, err := service.FinanceSummary(context.Background(), "kerala")
	require.NoError(t, err)
	assert.Equal(t, "KERALA", summary.Circle)
	assert.Len(t, summary.Categories, 3)
	assert.True(t, decimal.RequireFromString("1234568.19").Equal(summary.GrandTotal), summary.GrandTotal.String())
	assert.Contains(t, cache.values, financeSummaryKey("KERALA"))

	// second call is a cache hit
	again, err := service.FinanceSummary(context.Background(), "KL")
	require.NoError(t, err)
	assert.True(t, summary.GrandTotal.Equal(again.GrandTotal))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSalesQuery_Validation(t *testing.T) {
	service, mock, _ := setupSalesService(t)

	_, err := service.List(SalesQuery{From: "2025-02-10", To: "2025-02-01"})
	assertCode(t, err, CodeBadRequest)

	_, err = service.List(SalesQuery{From: "10/02/2025"})
	assertCode(t, err, CodeBadRequest)

	_, err = service.ListCollections(SalesQuery{Circle: "Atlantis"})
	assertCode(t, err, CodeBadRequest)

	_, err = service.ListByType("  ")
	assertCode(t, err, CodeBadRequest)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidateFinance(t *testing.T) {
	service, _, cache := setupSalesService(t)
	require.NoError(t, service.InvalidateFinance(context.Background(), "kerala"))
	assert.ElementsMatch(t, []string{financeSummaryKey("KERALA"), financeSummaryKey("")}, cache.deleted)

	assertCode(t, service.InvalidateFinance(context.Background(), "Atlantis"), CodeBadRequest)
}
