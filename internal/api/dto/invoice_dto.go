package dto

import (
	"time"

	"github.com/spec-kit/staffing-service/internal/domain"
	"github.com/spec-kit/staffing-service/internal/service"
)

// CreateInvoiceRequest payload.
type CreateInvoiceRequest struct {
	UserID string                     `json:"userId"`
	Items  []service.InvoiceItemInput `json:"items"`
}

// UpdateInvoiceRequest replaces the item list wholesale.
type UpdateInvoiceRequest struct {
	Items []service.InvoiceItemInput `json:"items"`
}

// InvoiceResponse is the full representation: the canonical item list plus
// the per-field columns legacy screens expect, rebuilt on every read.
type InvoiceResponse struct {
	ID                string               `json:"id"`
	UserID            string               `json:"userId"`
	UserName          string               `json:"userName,omitempty"`
	UserEmail         string               `json:"userEmail,omitempty"`
	UserPhone         string               `json:"userPhone,omitempty"`
	Items             []domain.InvoiceItem `json:"items"`
	BillableHours     []float64            `json:"billableHours"`
	Rates             []float64            `json:"rates"`
	Totals            []float64            `json:"totals"`
	ActualHoursWorked []string             `json:"actualHoursWorked"`
	Notes             []string             `json:"notes"`
	DatesOfWork       []string             `json:"datesOfWork"`
	CreatedAt         time.Time            `json:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt"`
}

// InvoiceSummaryResponse is a list row with minimal user fields.
type InvoiceSummaryResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	UserEmail string    `json:"userEmail,omitempty"`
	ItemCount int       `json:"itemCount"`
	UpdatedAt time.Time `json:"updatedAt"`
}
