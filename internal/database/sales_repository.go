package database

import (
	"fmt"

	"github.com/circleops/salesops-backend/internal/models"
)

// SalesRepository reads booked sales and finance collections
type SalesRepository struct {
	db DB
}

// NewSalesRepository creates a new sales repository
func NewSalesRepository(db DB) *SalesRepository {
	return &SalesRepository{db: db}
}

// build renders the shared circle/type/date filter against dateColumn
func (f salesWhere) build(dateColumn string) (string, []interface{}) {
	clause := ` WHERE 1=1`
	args := []interface{}{}
	if f.Circle != "" {
		args = append(args, f.Circle)
		clause += fmt.Sprintf(" AND circle = $%d", len(args))
	}
	if f.SaleType != "" {
		args = append(args, f.SaleType)
		clause += fmt.Sprintf(" AND sale_type = $%d", len(args))
	}
	if f.From != nil {
		args = append(args, *f.From)
		clause += fmt.Sprintf(" AND %s >= $%d", dateColumn, len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		clause += fmt.Sprintf(" AND %s <= $%d", dateColumn, len(args))
	}
	return clause, args
}

type salesWhere models.SalesFilter

// ListSales returns sales records newest first
func (r *SalesRepository) ListSales(filter models.SalesFilter) ([]models.SalesRecord, error) {
	where, args := salesWhere(filter).build("sale_date")
	records := []models.SalesRecord{}
	err := r.db.Select(&records, `
		SELECT id, circle, sale_type, employee_id, quantity, amount, sale_date, created_at
		FROM sales_records`+where+`
		ORDER BY sale_date DESC, created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return records, nil
}

// ListCollections returns finance collections newest first. SaleType is ignored.
func (r *SalesRepository) ListCollections(filter models.SalesFilter) ([]models.FinanceCollection, error) {
	filter.SaleType = ""
	where, args := salesWhere(filter).build("collected_on")
	collections := []models.FinanceCollection{}
	err := r.db.Select(&collections, `
		SELECT id, circle, category, amount, collected_on, collected_by, reference, created_at
		FROM finance_collections`+where+`
		ORDER BY collected_on DESC, created_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list finance collections: %w", err)
	}
	return collections, nil
}

// CollectionTotals sums collections per category
func (r *SalesRepository) CollectionTotals(circle string) ([]models.CategoryTotal, error) {
	where, args := salesWhere{Circle: circle}.build("collected_on")
	totals := []models.CategoryTotal{}
	err := r.db.Select(&totals, `
		SELECT category, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount
		FROM finance_collections`+where+`
		GROUP BY category
		ORDER BY category`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to total finance collections: %w", err)
	}
	return totals, nil
}
