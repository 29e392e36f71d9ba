package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesRecord is a booked sale of a product line by an employee
type SalesRecord struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	Circle     string          `db:"circle" json:"circle"`
	SaleType   string          `db:"sale_type" json:"sale_type"`
	EmployeeID *uuid.UUID      `db:"employee_id" json:"employee_id,omitempty"`
	Quantity   int             `db:"quantity" json:"quantity"`
	Amount     decimal.Decimal `db:"amount" json:"amount"`
	SaleDate   time.Time       `db:"sale_date" json:"sale_date"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// FinanceCollection is money collected against a revenue category
type FinanceCollection struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	Circle      string          `db:"circle" json:"circle"`
	Category    string          `db:"category" json:"category"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	CollectedOn time.Time       `db:"collected_on" json:"collected_on"`
	CollectedBy *uuid.UUID      `db:"collected_by" json:"collected_by,omitempty"`
	Reference   *string         `db:"reference" json:"reference,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// CategoryTotal is one row of the finance summary
type CategoryTotal struct {
	Category string          `db:"category" json:"category"`
	Count    int             `db:"count" json:"count"`
	Amount   decimal.Decimal `db:"amount" json:"amount"`
}

// FinanceSummary is the response of sales.getFinanceSummary
type FinanceSummary struct {
	Circle     string          `json:"circle,omitempty"`
	Categories []CategoryTotal `json:"categories"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// SalesFilter narrows the sales and finance listings
type SalesFilter struct {
	Circle   string
	SaleType string
	From     *time.Time
	To       *time.Time
}
