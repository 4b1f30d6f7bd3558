package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceType tells which side of the ledger an invoice sits on.
type InvoiceType string

const (
	InvoiceReceivable InvoiceType = "Receivable"
	InvoicePayable    InvoiceType = "Payable"
)

func (t InvoiceType) Valid() bool {
	return t == InvoiceReceivable || t == InvoicePayable
}

// InvoiceStatus represents the payment state of an invoice.
type InvoiceStatus string

const (
	StatusPaid    InvoiceStatus = "Paid"
	StatusPending InvoiceStatus = "Pending"
	StatusOverdue InvoiceStatus = "Overdue"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case StatusPaid, StatusPending, StatusOverdue:
		return true
	}
	return false
}

// OverdueOn reports whether an invoice in status s with the given due date
// must be flagged overdue on day today. Only Pending invoices move.
func (s InvoiceStatus) OverdueOn(dueDate, today time.Time) bool {
	return s == StatusPending && DateOf(dueDate).Before(DateOf(today))
}

const (
	maxInvoiceNumberLen = 50
	// amounts are stored as decimal(10,2)
	maxAmountDigits   = 8
	maxAmountDecimals = 2
)

// Invoice is the core aggregate root.
type Invoice struct {
	ID         uint            `json:"id"`
	Number     string          `json:"number"`
	Type       InvoiceType     `json:"type"`
	ClientID   *uint           `json:"client_id"`
	SupplierID *uint           `json:"supplier_id"`
	IssueDate  time.Time       `json:"issue_date"`
	DueDate    time.Time       `json:"due_date"`
	Amount     decimal.Decimal `json:"amount"`
	Status     InvoiceStatus   `json:"status"`
}

// Validate enforces the field constraints and the type/party exclusivity rule.
func (inv *Invoice) Validate() error {
	v := &ValidationError{}

	number := strings.TrimSpace(inv.Number)
	switch {
	case number == "":
		v.Add("number", "this field is required")
	case len(number) > maxInvoiceNumberLen:
		v.Add("number", "ensure this field has no more than 50 characters")
	}

	if inv.Status == "" {
		inv.Status = StatusPending
	}
	if !inv.Status.Valid() {
		v.Add("status", "must be one of: Paid Pending Overdue")
	}
	if inv.IssueDate.IsZero() {
		v.Add("issue_date", "this field is required")
	}
	if inv.DueDate.IsZero() {
		v.Add("due_date", "this field is required")
	}
	if inv.Amount.IsNegative() {
		v.Add("amount", "must be greater than or equal to 0")
	} else if inv.Amount.Truncate(0).NumDigits() > maxAmountDigits {
		v.Add("amount", "ensure there are no more than 8 digits before the decimal point")
	} else if !inv.Amount.Equal(inv.Amount.Truncate(maxAmountDecimals)) {
		v.Add("amount", "ensure there are no more than 2 decimal places")
	}

	switch inv.Type {
	case InvoiceReceivable:
		if inv.ClientID == nil {
			v.Add("client_id", "a client is required for a Receivable invoice")
		}
		if inv.SupplierID != nil {
			v.Add("supplier_id", "a supplier must not be set on a Receivable invoice")
		}
	case InvoicePayable:
		if inv.SupplierID == nil {
			v.Add("supplier_id", "a supplier is required for a Payable invoice")
		}
		if inv.ClientID != nil {
			v.Add("client_id", "a client must not be set on a Payable invoice")
		}
	default:
		v.Add("type", "must be one of: Receivable Payable")
	}

	return v.OrNil()
}

// ApplyOverdueRule rewrites a Pending invoice past its due date to Overdue.
// It reports whether the status changed.
func (inv *Invoice) ApplyOverdueRule(today time.Time) bool {
	if !inv.Status.OverdueOn(inv.DueDate, today) {
		return false
	}
	inv.Status = StatusOverdue
	return true
}

// Normalize canonicalises the number and dates before persistence.
// The amount is left as given; Validate rejects extra precision.
func (inv *Invoice) Normalize() {
	inv.Number = strings.TrimSpace(inv.Number)
	inv.IssueDate = DateOf(inv.IssueDate)
	inv.DueDate = DateOf(inv.DueDate)
}

// PartyID returns the counterparty referenced by the invoice and its kind.
func (inv *Invoice) PartyID() (PartyKind, uint, bool) {
	switch {
	case inv.Type == InvoiceReceivable && inv.ClientID != nil:
		return PartyClient, *inv.ClientID, true
	case inv.Type == InvoicePayable && inv.SupplierID != nil:
		return PartySupplier, *inv.SupplierID, true
	}
	return "", 0, false
}
