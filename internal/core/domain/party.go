package domain

import (
	"net/mail"
	"strings"
)

// PartyKind distinguishes the two counterparties an invoice can reference.
type PartyKind string

const (
	PartyClient   PartyKind = "client"
	PartySupplier PartyKind = "supplier"
)

// Party is a Client (owes us) or a Supplier (is owed by us). Both share the
// same shape and live in separate tables.
type Party struct {
	ID      uint      `json:"id"`
	Kind    PartyKind `json:"-"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Phone   *string   `json:"phone"`
	Address *string   `json:"address"`
}

// Validate checks the field constraints of the party table.
func (p *Party) Validate() error {
	v := &ValidationError{}
	name := strings.TrimSpace(p.Name)
	switch {
	case name == "":
		v.Add("name", "this field is required")
	case len(name) > 100:
		v.Add("name", "ensure this field has no more than 100 characters")
	}
	if _, err := mail.ParseAddress(p.Email); err != nil || p.Email == "" {
		v.Add("email", "enter a valid email address")
	}
	if p.Phone != nil && len(*p.Phone) > 15 {
		v.Add("phone", "ensure this field has no more than 15 characters")
	}
	return v.OrNil()
}
