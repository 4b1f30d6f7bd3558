package gormdb

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
)

// UserModel is the persistence shape of domain.User.
type UserModel struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:150;not null;uniqueIndex"`
	Email        string `gorm:"size:254"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:20;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserModel) TableName() string { return "users" }

func (m *UserModel) ToDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func userFromDomain(u *domain.User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// PartyFields holds the columns clients and suppliers share.
type PartyFields struct {
	ID      uint    `gorm:"primaryKey"`
	Name    string  `gorm:"size:100;not null"`
	Email   string  `gorm:"size:254;not null;uniqueIndex"`
	Phone   *string `gorm:"size:15"`
	Address *string `gorm:"type:text"`
}

func (f *PartyFields) toDomain(kind domain.PartyKind) *domain.Party {
	return &domain.Party{
		ID:      f.ID,
		Kind:    kind,
		Name:    f.Name,
		Email:   f.Email,
		Phone:   f.Phone,
		Address: f.Address,
	}
}

func partyFieldsFromDomain(p *domain.Party) PartyFields {
	return PartyFields{
		ID:      p.ID,
		Name:    p.Name,
		Email:   p.Email,
		Phone:   p.Phone,
		Address: p.Address,
	}
}

type ClientModel struct {
	PartyFields
	Invoices []InvoiceModel `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
}

func (ClientModel) TableName() string { return "clients" }

type SupplierModel struct {
	PartyFields
	Invoices []InvoiceModel `gorm:"foreignKey:SupplierID;constraint:OnDelete:CASCADE"`
}

func (SupplierModel) TableName() string { return "suppliers" }

// InvoiceModel stores dates as calendar dates at midnight UTC.
type InvoiceModel struct {
	ID            uint                `gorm:"primaryKey"`
	Number        string              `gorm:"size:50;not null;uniqueIndex"`
	Type          string              `gorm:"size:10;not null;index"`
	ClientID      *uint               `gorm:"index"`
	SupplierID    *uint               `gorm:"index"`
	IssueDate     time.Time           `gorm:"type:date;not null"`
	DueDate       time.Time           `gorm:"type:date;not null;index"`
	Amount        decimal.Decimal     `gorm:"type:decimal(10,2);not null"`
	Status        string              `gorm:"size:10;not null;default:Pending;index"`
	Notifications []NotificationModel `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

func (InvoiceModel) TableName() string { return "invoices" }

func (m *InvoiceModel) ToDomain() *domain.Invoice {
	return &domain.Invoice{
		ID:         m.ID,
		Number:     m.Number,
		Type:       domain.InvoiceType(m.Type),
		ClientID:   m.ClientID,
		SupplierID: m.SupplierID,
		IssueDate:  domain.DateOf(m.IssueDate),
		DueDate:    domain.DateOf(m.DueDate),
		Amount:     m.Amount,
		Status:     domain.InvoiceStatus(m.Status),
	}
}

func invoiceFromDomain(inv *domain.Invoice) *InvoiceModel {
	return &InvoiceModel{
		ID:         inv.ID,
		Number:     inv.Number,
		Type:       string(inv.Type),
		ClientID:   inv.ClientID,
		SupplierID: inv.SupplierID,
		IssueDate:  domain.DateOf(inv.IssueDate),
		DueDate:    domain.DateOf(inv.DueDate),
		Amount:     inv.Amount,
		Status:     string(inv.Status),
	}
}

type NotificationModel struct {
	ID        uint      `gorm:"primaryKey"`
	InvoiceID uint      `gorm:"not null;index"`
	Message   string    `gorm:"type:text;not null"`
	SentAt    time.Time `gorm:"not null"`
	Sent      bool      `gorm:"not null;default:false"`
}

func (NotificationModel) TableName() string { return "notifications" }

func (m *NotificationModel) ToDomain(invoiceNumber string) *domain.Notification {
	return &domain.Notification{
		ID:            m.ID,
		InvoiceID:     m.InvoiceID,
		InvoiceNumber: invoiceNumber,
		Message:       m.Message,
		SentAt:        m.SentAt.UTC(),
		Sent:          m.Sent,
	}
}

func notificationFromDomain(n *domain.Notification) *NotificationModel {
	return &NotificationModel{
		ID:        n.ID,
		InvoiceID: n.InvoiceID,
		Message:   n.Message,
		SentAt:    n.SentAt,
		Sent:      n.Sent,
	}
}
