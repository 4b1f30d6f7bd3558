package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
	"github.com/cuentas/invoice-tracker/internal/core/service"
	"github.com/cuentas/invoice-tracker/internal/infrastructure/auth"
	"github.com/cuentas/invoice-tracker/internal/infrastructure/db/gormdb"
	"github.com/cuentas/invoice-tracker/internal/infrastructure/http/handlers"
	"github.com/cuentas/invoice-tracker/internal/infrastructure/notify"
)

// movableClock lets a test advance "today" between requests.
type movableClock struct {
	mu    sync.Mutex
	today time.Time
}

func (c *movableClock) Today() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.DateOf(c.today)
}

func (c *movableClock) set(t time.Time) {
	c.mu.Lock()
	c.today = t
	c.mu.Unlock()
}

type testServer struct {
	e     *echo.Echo
	clock *movableClock
	admin string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	log := zerolog.Nop()

	db, err := gormdb.Connect(ctx, gormdb.Config{Driver: gormdb.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, gormdb.Migrate(ctx, db))
	t.Cleanup(func() { _ = gormdb.Close(db) })

	clock := &movableClock{today: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	users := gormdb.NewGormUserRepository(db)
	clients := gormdb.NewGormClientRepository(db)
	suppliers := gormdb.NewGormSupplierRepository(db)
	invoices := gormdb.NewGormInvoiceRepository(db, clock)
	notifications := gormdb.NewGormNotificationRepository(db)
	tokens := auth.NewJWTManager("test-secret", 15*time.Minute, time.Hour)

	userService := service.NewUserService(users, log)
	_, err = userService.Bootstrap(ctx, "root", "root@example.com", "rootpw")
	require.NoError(t, err)

	e := NewRouter(Deps{
		Log:           log,
		Tokens:        tokens,
		Sweeper:       service.NewSweepService(invoices, clock, log),
		Auth:          service.NewAuthService(users, tokens, nil, log),
		Users:         userService,
		Clients:       service.NewPartyService(clients, log),
		Suppliers:     service.NewPartyService(suppliers, log),
		Invoices:      service.NewInvoiceService(invoices, clients, suppliers, log),
		Notifications: service.NewNotificationService(notifications, invoices, notify.NewLogNotifier(log), log),
		Dashboard:     service.NewDashboardService(gormdb.NewGormDashboardRepository(db)),
		HealthChecks:  map[string]handlers.Check{"database": handlers.DatabaseCheck(db)},
		Registry:      prometheus.NewRegistry(),
	})

	s := &testServer{e: e, clock: clock}
	s.admin = s.login(t, "root", "rootpw")
	return s
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (int, map[string]any) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 && strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec.Code, out
}

func (s *testServer) list(t *testing.T, path, token string) (int, []map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var out []map[string]any
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec.Code, out
}

func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	code, body := s.do(t, http.MethodPost, "/v1/token", "", `{"username":"`+username+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, code, body)
	token, _ := body["access"].(string)
	require.NotEmpty(t, token)
	return token
}

func (s *testServer) create(t *testing.T, path, token, body string) uint {
	t.Helper()
	code, out := s.do(t, http.MethodPost, path, token, body)
	require.Equal(t, http.StatusCreated, code, out)
	return uint(out["id"].(float64))
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])

	code, _ = s.do(t, http.MethodGet, "/health/ready", "", "")
	assert.Equal(t, http.StatusOK, code)
}

func TestRouter_AuthenticationErrors(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodGet, "/v1/invoices", "", "")
	assert.Equal(t, http.StatusForbidden, code, "missing credentials")
	assert.Equal(t, domain.ErrUnauthenticated.Error(), body["error"])

	code, _ = s.do(t, http.MethodGet, "/v1/invoices", "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, code, "invalid token")

	code, _ = s.do(t, http.MethodPost, "/v1/token", "", `{"username":"root","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, code, "bad credentials")

	code, _ = s.do(t, http.MethodPost, "/v1/register", "", `{"username":"x","password":"x","role":"Admin"}`)
	assert.Equal(t, http.StatusForbidden, code, "anonymous registration")

	code, users := s.list(t, "/v1/users", s.admin)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, users, 1, "no user row created")
}

func TestRouter_UserVisibilityAndGating(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(t, http.MethodPost, "/v1/register", s.admin, `{"username":"acc","password":"accpw","role":"Accountant"}`)
	require.Equal(t, http.StatusCreated, code)
	acc := s.login(t, "acc", "accpw")

	code, me := s.do(t, http.MethodGet, "/v1/me", acc, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Accountant", me["role"])

	code, users := s.list(t, "/v1/users", acc)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, users, 1)
	assert.Equal(t, "acc", users[0]["username"])

	code, users = s.list(t, "/v1/users", s.admin)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, users, 2)

	code, _ = s.do(t, http.MethodPost, "/v1/users", acc, `{"username":"x","password":"x","role":"Admin"}`)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(t, http.MethodPost, "/v1/register", acc, `{"username":"x","password":"x","role":"Admin"}`)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(t, http.MethodGet, "/v1/users/1", acc, "")
	assert.Equal(t, http.StatusNotFound, code, "other users are invisible to non-admins")
}

func TestRouter_InvoiceLifecycle(t *testing.T) {
	s := newTestServer(t)

	clientID := s.create(t, "/v1/clients", s.admin, `{"name":"Acme","email":"ap@acme.test"}`)
	supplierID := s.create(t, "/v1/suppliers", s.admin, `{"name":"Paper Co","email":"ar@paper.test"}`)

	// due before today: stored as Overdue straight away
	code, inv := s.do(t, http.MethodPost, "/v1/invoices", s.admin,
		`{"number":"R-1","type":"Receivable","client_id":`+itoa(clientID)+`,"issue_date":"2024-04-01","due_date":"2024-05-01","amount":"100.00"}`)
	require.Equal(t, http.StatusCreated, code, inv)
	assert.Equal(t, "Overdue", inv["status"])

	code, body := s.do(t, http.MethodPost, "/v1/invoices", s.admin,
		`{"number":"P-1","type":"Payable","client_id":`+itoa(clientID)+`,"supplier_id":`+itoa(supplierID)+`,"issue_date":"2024-05-01","due_date":"2024-06-10","amount":"40"}`)
	require.Equal(t, http.StatusBadRequest, code)
	fields, _ := body["fields"].(map[string]any)
	assert.Equal(t, "a client must not be set on a Payable invoice", fields["client_id"])

	code, body = s.do(t, http.MethodPost, "/v1/invoices", s.admin,
		`{"number":"P-2","type":"Payable","supplier_id":999,"issue_date":"2024-05-01","due_date":"2024-06-10","amount":"40"}`)
	require.Equal(t, http.StatusBadRequest, code)
	fields, _ = body["fields"].(map[string]any)
	assert.Contains(t, fields["supplier_id"], "does not exist")

	code, body = s.do(t, http.MethodPost, "/v1/invoices", s.admin,
		`{"number":"R-2","type":"Receivable","client_id":`+itoa(clientID)+`,"issue_date":"2024-05-01","due_date":"2024-06-10","amount":"100.005"}`)
	require.Equal(t, http.StatusBadRequest, code, "amounts are never rounded")
	fields, _ = body["fields"].(map[string]any)
	assert.Equal(t, "ensure there are no more than 2 decimal places", fields["amount"])

	payableID := s.create(t, "/v1/invoices", s.admin,
		`{"number":"P-1","type":"Payable","supplier_id":`+itoa(supplierID)+`,"issue_date":"2024-05-01","due_date":"2024-06-10","amount":"40.5"}`)

	code, pending := s.list(t, "/v1/invoices?status=Pending", s.admin)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, pending, 1)
	assert.Equal(t, "40.50", pending[0]["amount"])

	// the sweep runs ahead of every request
	s.clock.set(time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC))
	code, inv = s.do(t, http.MethodGet, "/v1/invoices/"+itoa(payableID), s.admin, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Overdue", inv["status"])

	code, metrics := s.do(t, http.MethodGet, "/v1/dashboard-metrics", s.admin, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "100.00", metrics["total_receivable"])
	assert.Equal(t, "40.50", metrics["total_payable"])
	assert.Equal(t, float64(2), metrics["overdue_count"])

	code, _ = s.do(t, http.MethodDelete, "/v1/suppliers/"+itoa(supplierID), s.admin, "")
	require.Equal(t, http.StatusNoContent, code)

	code, _ = s.do(t, http.MethodGet, "/v1/invoices/"+itoa(payableID), s.admin, "")
	assert.Equal(t, http.StatusNotFound, code, "supplier delete cascades to its invoices")
}

func TestRouter_Notifications(t *testing.T) {
	s := newTestServer(t)

	clientID := s.create(t, "/v1/clients", s.admin, `{"name":"Acme","email":"ap@acme.test"}`)
	invoiceID := s.create(t, "/v1/invoices", s.admin,
		`{"number":"R-9","type":"Receivable","client_id":`+itoa(clientID)+`,"issue_date":"2024-05-01","due_date":"2024-07-01","amount":"10"}`)

	code, _ := s.do(t, http.MethodPost, "/v1/notifications", s.admin, `{"invoice_id":12345,"message":"hi"}`)
	assert.Equal(t, http.StatusBadRequest, code, "unknown invoice")

	id := s.create(t, "/v1/notifications", s.admin, `{"invoice_id":`+itoa(invoiceID)+`,"message":"reminder"}`)

	// no queue configured: delivery happens inline
	code, _ = s.do(t, http.MethodPost, "/v1/notifications/"+itoa(id)+"/send", s.admin, "")
	require.Equal(t, http.StatusOK, code)

	code, n := s.do(t, http.MethodGet, "/v1/notifications/"+itoa(id), s.admin, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, n["sent"])
	assert.Equal(t, "R-9", n["invoice_number"])
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
