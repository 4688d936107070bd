package domain

import "time"

// InvoiceItem is one normalized line of work on an invoice. DateOfWork is
// an ISO calendar date string.
type InvoiceItem struct {
	DateOfWork    string  `json:"date_of_work"`
	ActualHours   string  `json:"actual_hours"`
	BillableHours float64 `json:"billable_hours"`
	Rate          float64 `json:"rate"`
	Total         float64 `json:"total"`
	Notes         string  `json:"notes"`
}

// Invoice holds the canonical line-item list for one contractor. The
// per-field columns the admin screens display are projections, not state.
type Invoice struct {
	ID        string
	UserID    string
	Items     []InvoiceItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InvoiceProjection mirrors the item list as index-aligned per-field lists
// for legacy display.
type InvoiceProjection struct {
	BillableHours []float64
	Rates         []float64
	Totals        []float64
	ActualHours   []string
	Notes         []string
	DatesOfWork   []string
}

// Project rebuilds the derived parallel lists from the canonical items.
func (inv *Invoice) Project() InvoiceProjection {
	p := InvoiceProjection{
		BillableHours: make([]float64, len(inv.Items)),
		Rates:         make([]float64, len(inv.Items)),
		Totals:        make([]float64, len(inv.Items)),
		ActualHours:   make([]string, len(inv.Items)),
		Notes:         make([]string, len(inv.Items)),
		DatesOfWork:   make([]string, len(inv.Items)),
	}
	for i, item := range inv.Items {
		p.BillableHours[i] = item.BillableHours
		p.Rates[i] = item.Rate
		p.Totals[i] = item.Total
		p.ActualHours[i] = item.ActualHours
		p.Notes[i] = item.Notes
		p.DatesOfWork[i] = item.DateOfWork
	}
	return p
}
