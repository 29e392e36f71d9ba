package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/circleops/salesops-backend/internal/database"
	"github.com/circleops/salesops-backend/internal/models"
)

// SalesService serves booked sales and finance collection views
type SalesService struct {
	sales  *database.SalesRepository
	cache  SummaryCache
	logger *logrus.Logger
}

// NewSalesService creates a new sales service
func NewSalesService(sales *database.SalesRepository, cache SummaryCache, logger *logrus.Logger) *SalesService {
	return &SalesService{sales: sales, cache: cache, logger: logger}
}

// SalesQuery is the raw filter as received from the client
type SalesQuery struct {
	Circle string
	From   string // YYYY-MM-DD
	To     string // YYYY-MM-DD
}

func (q SalesQuery) filter() (models.SalesFilter, error) {
	var f models.SalesFilter
	c, err := optionalCircle(q.Circle)
	if err != nil {
		return f, err
	}
	f.Circle = c
	if q.From != "" {
		from, err := parseDate("from", q.From)
		if err != nil {
			return f, err
		}
		f.From = &from
	}
	if q.To != "" {
		to, err := parseDate("to", q.To)
		if err != nil {
			return f, err
		}
		f.To = &to
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return f, errBadRequest("to must not be before from")
	}
	return f, nil
}

// List returns sales records in range
func (s *SalesService) List(q SalesQuery) ([]models.SalesRecord, error) {
	f, err := q.filter()
	if err != nil {
		return nil, err
	}
	records, err := s.sales.ListSales(f)
	if err != nil {
		return nil, errInternal("failed to list sales", err)
	}
	return records, nil
}

// ListByType returns sales records of one product line
func (s *SalesService) ListByType(saleType string) ([]models.SalesRecord, error) {
	saleType = strings.ToUpper(strings.TrimSpace(saleType))
	if saleType == "" {
		return nil, errBadRequest("sale type is required")
	}
	records, err := s.sales.ListSales(models.SalesFilter{SaleType: saleType})
	if err != nil {
		return nil, errInternal("failed to list sales", err)
	}
	return records, nil
}

// ListCollections returns finance collections in range
func (s *SalesService) ListCollections(q SalesQuery) ([]models.FinanceCollection, error) {
	f, err := q.filter()
	if err != nil {
		return nil, err
	}
	collections, err := s.sales.ListCollections(f)
	if err != nil {
		return nil, errInternal("failed to list finance collections", err)
	}
	return collections, nil
}

// FinanceSummary totals collections per category with exact decimal arithmetic
func (s *SalesService) FinanceSummary(ctx context.Context, rawCircle string) (*models.FinanceSummary, error) {
	c, err := optionalCircle(rawCircle)
	if err != nil {
		return nil, err
	}

	key := financeSummaryKey(c)
	var cached models.FinanceSummary
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	totals, err := s.sales.CollectionTotals(c)
	if err != nil {
		return nil, errInternal("failed to total finance collections", err)
	}
	summary := &models.FinanceSummary{Circle: c, Categories: totals, GrandTotal: decimal.Zero}
	for _, t := range totals {
		summary.GrandTotal = summary.GrandTotal.Add(t.Amount)
	}
	s.cache.Set(ctx, key, summary)
	return summary, nil
}

// InvalidateFinance drops cached finance summaries for a circle and the
// all-circle view. Called after finance collections are reloaded.
func (s *SalesService) InvalidateFinance(ctx context.Context, rawCircle string) error {
	c, err := optionalCircle(rawCircle)
	if err != nil {
		return err
	}
	s.cache.Delete(ctx, financeSummaryKey(c), financeSummaryKey(""))
	return nil
}
