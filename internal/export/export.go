// Package export maps the ledger to a flat tabular form and produces the
// downloadable CSV handed to the user.
package export

import (
	"github.com/receipt-lens/receipt-lens/internal/receipt"
)

// Row is one exportable line. Errored records never become rows; the user
// exports the successful subset.
type Row struct {
	FileName       string
	Date           string
	CompanyName    string
	Description    string
	Amount         *int
	TaxAmount      *int
	Category       string
	CategoryReason string
	Confidence     *float64
	ManuallyEdited bool
}

// Rows projects the non-errored records into export rows, preserving
// ledger order.
func Rows(records []receipt.Result) []Row {
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		if r.Failed() {
			continue
		}
		row := Row{
			FileName:       r.FileName,
			Amount:         r.Amount,
			TaxAmount:      r.TaxAmount,
			Confidence:     r.Confidence,
			ManuallyEdited: r.ManuallyEdited,
		}
		if r.Date != nil {
			row.Date = *r.Date
		}
		if r.CompanyName != nil {
			row.CompanyName = *r.CompanyName
		}
		if r.Description != nil {
			row.Description = *r.Description
		}
		if r.Category != nil {
			row.Category = string(*r.Category)
		}
		if r.CategoryReason != nil {
			row.CategoryReason = *r.CategoryReason
		}
		rows = append(rows, row)
	}
	return rows
}
