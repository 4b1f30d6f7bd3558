package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
	"github.com/cuentas/invoice-tracker/internal/core/ports"
)

func TestPartyHandler_Create(t *testing.T) {
	svc := &stubPartyService{
		kind: domain.PartyClient,
		createFn: func(ctx context.Context, in ports.PartyInput) (*domain.Party, error) {
			if in.Name != "Acme" || in.Phone == nil || *in.Phone != "555-0100" || in.Address != nil {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Party{ID: 1, Kind: domain.PartyClient, Name: in.Name, Email: in.Email, Phone: in.Phone}, nil
		},
	}
	h := NewPartyHandler(svc)

	c, rec := newContext(http.MethodPost, "/v1/clients", `{"name":"Acme","email":"billing@acme.test","phone":"555-0100"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["name"] != "Acme" || resp["phone"] != "555-0100" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if v, ok := resp["address"]; !ok || v != nil {
		t.Fatalf("expected null address, got %v", v)
	}
}

func TestPartyHandler_Create_Invalid(t *testing.T) {
	svc := &stubPartyService{
		createFn: func(ctx context.Context, in ports.PartyInput) (*domain.Party, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewPartyHandler(svc)

	c, _ := newContext(http.MethodPost, "/v1/suppliers", `{"name":"","email":"nope","phone":"0123456789012345"}`)
	err := h.Create(c)

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, field := range []string{"name", "email", "phone"} {
		if _, ok := ve.Fields[field]; !ok {
			t.Errorf("expected an error on %s, got %+v", field, ve.Fields)
		}
	}
}

func TestPartyHandler_Delete(t *testing.T) {
	deleted := uint(0)
	svc := &stubPartyService{
		deleteFn: func(ctx context.Context, id uint) error {
			deleted = id
			return nil
		},
	}
	h := NewPartyHandler(svc)

	c, rec := newContext(http.MethodDelete, "/v1/clients/4", "")
	if err := h.Delete(withID(c, "4")); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || deleted != 4 {
		t.Fatalf("expected 204 for id 4, got %d for %d", rec.Code, deleted)
	}
}

func TestPartyHandler_Get_NotFound(t *testing.T) {
	svc := &stubPartyService{
		getFn: func(ctx context.Context, id uint) (*domain.Party, error) {
			return nil, domain.ErrNotFound
		},
	}
	h := NewPartyHandler(svc)

	c, _ := newContext(http.MethodGet, "/v1/clients/99", "")
	if err := h.Get(withID(c, "99")); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
