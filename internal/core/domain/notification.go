package domain

import (
	"strings"
	"time"
)

// Notification is a message attached to an invoice.
type Notification struct {
	ID            uint      `json:"id"`
	InvoiceID     uint      `json:"invoice_id"`
	InvoiceNumber string    `json:"invoice_number"`
	Message       string    `json:"message"`
	SentAt        time.Time `json:"sent_at"`
	Sent          bool      `json:"sent"`
}

func (n *Notification) Validate() error {
	v := &ValidationError{}
	if n.InvoiceID == 0 {
		v.Add("invoice_id", "this field is required")
	}
	if strings.TrimSpace(n.Message) == "" {
		v.Add("message", "this field is required")
	}
	return v.OrNil()
}
