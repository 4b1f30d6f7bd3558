package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
	"github.com/cuentas/invoice-tracker/internal/core/ports"
)

// --- Auth ---

type tokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type tokenResponse struct {
	Access          string        `json:"access"`
	Refresh         string        `json:"refresh"`
	AccessExpiresAt string        `json:"access_expires_at"`
	User            *userResponse `json:"user,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Users ---

type userRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password"`
	Role     string `json:"role" validate:"required,oneof=Admin Accountant Manager"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=Admin Accountant Manager"`
}

type userResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type meResponse struct {
	userResponse
	Capabilities []string `json:"capabilities"`
}

func toUserResponse(u *domain.User) *userResponse {
	return &userResponse{ID: u.ID, Username: u.Username, Email: u.Email, Role: string(u.Role)}
}

// --- Clients / suppliers ---

type partyRequest struct {
	Name    string  `json:"name" validate:"required,max=100"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=15"`
	Address *string `json:"address"`
}

func (r partyRequest) toInput() ports.PartyInput {
	return ports.PartyInput{Name: r.Name, Email: r.Email, Phone: r.Phone, Address: r.Address}
}

// --- Invoices ---

type invoiceRequest struct {
	Number     string          `json:"number" validate:"required,max=50"`
	Type       string          `json:"type" validate:"required,oneof=Receivable Payable"`
	ClientID   *uint           `json:"client_id"`
	SupplierID *uint           `json:"supplier_id"`
	IssueDate  string          `json:"issue_date" validate:"required,datetime=2006-01-02"`
	DueDate    string          `json:"due_date" validate:"required,datetime=2006-01-02"`
	Amount     decimal.Decimal `json:"amount" validate:"required" swaggertype:"string" example:"1500.00"`
	Status     string          `json:"status" validate:"omitempty,oneof=Paid Pending Overdue"`
}

// toInput assumes the request passed validation, so the dates parse.
func (r invoiceRequest) toInput() ports.InvoiceInput {
	issue, _ := time.Parse(domain.DateLayout, r.IssueDate)
	due, _ := time.Parse(domain.DateLayout, r.DueDate)
	return ports.InvoiceInput{
		Number:     r.Number,
		Type:       domain.InvoiceType(r.Type),
		ClientID:   r.ClientID,
		SupplierID: r.SupplierID,
		IssueDate:  issue,
		DueDate:    due,
		Amount:     r.Amount,
		Status:     domain.InvoiceStatus(r.Status),
	}
}

type invoiceResponse struct {
	ID         uint   `json:"id"`
	Number     string `json:"number"`
	Type       string `json:"type"`
	ClientID   *uint  `json:"client_id"`
	SupplierID *uint  `json:"supplier_id"`
	IssueDate  string `json:"issue_date"`
	DueDate    string `json:"due_date"`
	Amount     string `json:"amount"`
	Status     string `json:"status"`
}

func toInvoiceResponse(inv *domain.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:         inv.ID,
		Number:     inv.Number,
		Type:       string(inv.Type),
		ClientID:   inv.ClientID,
		SupplierID: inv.SupplierID,
		IssueDate:  inv.IssueDate.Format(domain.DateLayout),
		DueDate:    inv.DueDate.Format(domain.DateLayout),
		Amount:     inv.Amount.StringFixed(2),
		Status:     string(inv.Status),
	}
}

// --- Notifications ---

type notificationRequest struct {
	InvoiceID uint   `json:"invoice_id" validate:"required,gt=0"`
	Message   string `json:"message" validate:"required"`
	Sent      bool   `json:"sent"`
}

func (r notificationRequest) toInput() ports.NotificationInput {
	return ports.NotificationInput{InvoiceID: r.InvoiceID, Message: r.Message, Sent: r.Sent}
}

type notificationResponse struct {
	ID            uint   `json:"id"`
	InvoiceID     uint   `json:"invoice_id"`
	InvoiceNumber string `json:"invoice_number"`
	Message       string `json:"message"`
	SentAt        string `json:"sent_at"`
	Sent          bool   `json:"sent"`
}

func toNotificationResponse(n *domain.Notification) notificationResponse {
	return notificationResponse{
		ID:            n.ID,
		InvoiceID:     n.InvoiceID,
		InvoiceNumber: n.InvoiceNumber,
		Message:       n.Message,
		SentAt:        n.SentAt.UTC().Format(time.RFC3339),
		Sent:          n.Sent,
	}
}

// --- Dashboard ---

type monthlyFlowItem struct {
	Month       string `json:"month"`
	MonthNumber int    `json:"month_number"`
	Total       string `json:"total"`
}

type dashboardResponse struct {
	TotalReceivable string            `json:"total_receivable"`
	TotalPayable    string            `json:"total_payable"`
	OverdueCount    int64             `json:"overdue_count"`
	MonthlyFlow     []monthlyFlowItem `json:"monthly_flow"`
}

func toDashboardResponse(m *domain.DashboardMetrics) dashboardResponse {
	flow := make([]monthlyFlowItem, 0, len(m.MonthlyFlow))
	for _, item := range m.MonthlyFlow {
		flow = append(flow, monthlyFlowItem{
			Month:       item.Month.String(),
			MonthNumber: int(item.Month),
			Total:       item.Total.StringFixed(2),
		})
	}
	return dashboardResponse{
		TotalReceivable: m.TotalReceivable.StringFixed(2),
		TotalPayable:    m.TotalPayable.StringFixed(2),
		OverdueCount:    m.OverdueCount,
		MonthlyFlow:     flow,
	}
}
