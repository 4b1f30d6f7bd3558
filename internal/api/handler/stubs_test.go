package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cuentas/invoice-tracker/internal/api/middleware"
	"github.com/cuentas/invoice-tracker/internal/core/domain"
	"github.com/cuentas/invoice-tracker/internal/core/ports"
	"github.com/cuentas/invoice-tracker/internal/infrastructure/queue"
)

var (
	admin      = domain.Identity{UserID: 1, Username: "root", Role: domain.RoleAdmin}
	accountant = domain.Identity{UserID: 2, Username: "acc", Role: domain.RoleAccountant}
)

// newContext builds an echo context with the production validator. A non-empty
// body is sent as JSON.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withCaller(c echo.Context, id domain.Identity) echo.Context {
	c.Set(middleware.IdentityKey, id)
	return c
}

func withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

// --- auth ---

type stubAuthService struct {
	loginFn   func(ctx context.Context, username, password string) (*ports.TokenPair, *domain.User, error)
	refreshFn func(ctx context.Context, token string) (*ports.TokenPair, error)
	revokeFn  func(ctx context.Context, token string) error
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.TokenPair, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, token string) (*ports.TokenPair, error) {
	return s.refreshFn(ctx, token)
}

func (s *stubAuthService) Revoke(ctx context.Context, token string) error {
	return s.revokeFn(ctx, token)
}

// --- users ---

type stubUserService struct {
	registerFn func(ctx context.Context, caller domain.Identity, in ports.RegisterUserInput) (*domain.User, error)
	getFn      func(ctx context.Context, caller domain.Identity, id uint) (*domain.User, error)
	listFn     func(ctx context.Context, caller domain.Identity) ([]*domain.User, error)
	updateFn   func(ctx context.Context, caller domain.Identity, id uint, in ports.UpdateUserInput) (*domain.User, error)
	deleteFn   func(ctx context.Context, caller domain.Identity, id uint) error
	meFn       func(ctx context.Context, caller domain.Identity) (*domain.User, error)
}

func (s *stubUserService) Register(ctx context.Context, caller domain.Identity, in ports.RegisterUserInput) (*domain.User, error) {
	return s.registerFn(ctx, caller, in)
}

func (s *stubUserService) Get(ctx context.Context, caller domain.Identity, id uint) (*domain.User, error) {
	return s.getFn(ctx, caller, id)
}

func (s *stubUserService) List(ctx context.Context, caller domain.Identity) ([]*domain.User, error) {
	return s.listFn(ctx, caller)
}

func (s *stubUserService) Update(ctx context.Context, caller domain.Identity, id uint, in ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, caller, id, in)
}

func (s *stubUserService) Delete(ctx context.Context, caller domain.Identity, id uint) error {
	return s.deleteFn(ctx, caller, id)
}

func (s *stubUserService) Me(ctx context.Context, caller domain.Identity) (*domain.User, error) {
	return s.meFn(ctx, caller)
}

// --- parties ---

type stubPartyService struct {
	kind     domain.PartyKind
	createFn func(ctx context.Context, in ports.PartyInput) (*domain.Party, error)
	getFn    func(ctx context.Context, id uint) (*domain.Party, error)
	listFn   func(ctx context.Context) ([]*domain.Party, error)
	updateFn func(ctx context.Context, id uint, in ports.PartyInput) (*domain.Party, error)
	deleteFn func(ctx context.Context, id uint) error
}

func (s *stubPartyService) Kind() domain.PartyKind { return s.kind }

func (s *stubPartyService) Create(ctx context.Context, in ports.PartyInput) (*domain.Party, error) {
	return s.createFn(ctx, in)
}

func (s *stubPartyService) Get(ctx context.Context, id uint) (*domain.Party, error) {
	return s.getFn(ctx, id)
}

func (s *stubPartyService) List(ctx context.Context) ([]*domain.Party, error) {
	return s.listFn(ctx)
}

func (s *stubPartyService) Update(ctx context.Context, id uint, in ports.PartyInput) (*domain.Party, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubPartyService) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

// --- invoices ---

type stubInvoiceService struct {
	createFn func(ctx context.Context, in ports.InvoiceInput) (*domain.Invoice, error)
	getFn    func(ctx context.Context, id uint) (*domain.Invoice, error)
	listFn   func(ctx context.Context, filter ports.InvoiceFilter) ([]*domain.Invoice, error)
	updateFn func(ctx context.Context, id uint, in ports.InvoiceInput) (*domain.Invoice, error)
	deleteFn func(ctx context.Context, id uint) error
}

func (s *stubInvoiceService) Create(ctx context.Context, in ports.InvoiceInput) (*domain.Invoice, error) {
	return s.createFn(ctx, in)
}

func (s *stubInvoiceService) Get(ctx context.Context, id uint) (*domain.Invoice, error) {
	return s.getFn(ctx, id)
}

func (s *stubInvoiceService) List(ctx context.Context, filter ports.InvoiceFilter) ([]*domain.Invoice, error) {
	return s.listFn(ctx, filter)
}

func (s *stubInvoiceService) Update(ctx context.Context, id uint, in ports.InvoiceInput) (*domain.Invoice, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubInvoiceService) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

// --- notifications ---

type stubNotificationService struct {
	createFn  func(ctx context.Context, in ports.NotificationInput) (*domain.Notification, error)
	getFn     func(ctx context.Context, id uint) (*domain.Notification, error)
	listFn    func(ctx context.Context) ([]*domain.Notification, error)
	updateFn  func(ctx context.Context, id uint, in ports.NotificationInput) (*domain.Notification, error)
	deleteFn  func(ctx context.Context, id uint) error
	deliverFn func(ctx context.Context, id uint) error
}

func (s *stubNotificationService) Create(ctx context.Context, in ports.NotificationInput) (*domain.Notification, error) {
	return s.createFn(ctx, in)
}

func (s *stubNotificationService) Get(ctx context.Context, id uint) (*domain.Notification, error) {
	return s.getFn(ctx, id)
}

func (s *stubNotificationService) List(ctx context.Context) ([]*domain.Notification, error) {
	return s.listFn(ctx)
}

func (s *stubNotificationService) Update(ctx context.Context, id uint, in ports.NotificationInput) (*domain.Notification, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubNotificationService) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func (s *stubNotificationService) Deliver(ctx context.Context, id uint) error {
	return s.deliverFn(ctx, id)
}

type stubQueue struct {
	enqueued []queue.Delivery
	err      error
}

func (q *stubQueue) Enqueue(d queue.Delivery) error {
	if q.err != nil {
		return q.err
	}
	q.enqueued = append(q.enqueued, d)
	return nil
}

func (q *stubQueue) Pending() int { return len(q.enqueued) }

type dashboardFunc func(ctx context.Context) (*domain.DashboardMetrics, error)

func (f dashboardFunc) Metrics(ctx context.Context) (*domain.DashboardMetrics, error) { return f(ctx) }
