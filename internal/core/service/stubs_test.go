package service

import (
	"context"
	"sort"
	"time"

	"github.com/cuentas/invoice-tracker/internal/core/domain"
	"github.com/cuentas/invoice-tracker/internal/core/ports"
)

type stubUserRepo struct {
	users  map[uint]*domain.User
	nextID uint
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uint]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrConflict
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = r.nextID
	r.users[copy.ID] = copy
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) List(_ context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		if filter.OnlyID != 0 && u.ID != filter.OnlyID {
			continue
		}
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type stubPartyRepo struct {
	kind    domain.PartyKind
	parties map[uint]*domain.Party
	nextID  uint
	deleted []uint
}

func newStubPartyRepo(kind domain.PartyKind) *stubPartyRepo {
	return &stubPartyRepo{kind: kind, parties: make(map[uint]*domain.Party)}
}

func (r *stubPartyRepo) Kind() domain.PartyKind { return r.kind }

func (r *stubPartyRepo) Create(_ context.Context, p *domain.Party) (*domain.Party, error) {
	r.nextID++
	copy := *p
	copy.ID = r.nextID
	r.parties[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubPartyRepo) FindByID(_ context.Context, id uint) (*domain.Party, error) {
	p, ok := r.parties[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (r *stubPartyRepo) List(_ context.Context) ([]*domain.Party, error) {
	out := make([]*domain.Party, 0, len(r.parties))
	for _, p := range r.parties {
		copy := *p
		out = append(out, &copy)
	}
	return out, nil
}

func (r *stubPartyRepo) Update(_ context.Context, p *domain.Party) (*domain.Party, error) {
	copy := *p
	r.parties[p.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubPartyRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.parties[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.parties, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubPartyRepo) Exists(_ context.Context, id uint) (bool, error) {
	_, ok := r.parties[id]
	return ok, nil
}

// stubInvoiceRepo applies the overdue rule on write like the real store.
type stubInvoiceRepo struct {
	invoices map[uint]*domain.Invoice
	nextID   uint
	clock    domain.Clock

	markOverdueFn func(ctx context.Context, today time.Time) (int64, error)
}

func newStubInvoiceRepo(clock domain.Clock) *stubInvoiceRepo {
	return &stubInvoiceRepo{invoices: make(map[uint]*domain.Invoice), clock: clock}
}

func (r *stubInvoiceRepo) Create(_ context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	r.nextID++
	copy := *inv
	copy.ID = r.nextID
	copy.ApplyOverdueRule(r.clock.Today())
	r.invoices[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubInvoiceRepo) FindByID(_ context.Context, id uint) (*domain.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *inv
	return &out, nil
}

func (r *stubInvoiceRepo) List(_ context.Context, filter ports.InvoiceFilter) ([]*domain.Invoice, error) {
	out := make([]*domain.Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		if filter.Type != "" && inv.Type != filter.Type {
			continue
		}
		if filter.Status != "" && inv.Status != filter.Status {
			continue
		}
		copy := *inv
		out = append(out, &copy)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubInvoiceRepo) Update(_ context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	copy := *inv
	copy.ApplyOverdueRule(r.clock.Today())
	r.invoices[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubInvoiceRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.invoices[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.invoices, id)
	return nil
}

func (r *stubInvoiceRepo) Exists(_ context.Context, id uint) (bool, error) {
	_, ok := r.invoices[id]
	return ok, nil
}

func (r *stubInvoiceRepo) MarkOverdue(ctx context.Context, today time.Time) (int64, error) {
	if r.markOverdueFn != nil {
		return r.markOverdueFn(ctx, today)
	}
	var n int64
	for _, inv := range r.invoices {
		if inv.ApplyOverdueRule(today) {
			n++
		}
	}
	return n, nil
}

type stubNotificationRepo struct {
	items  map[uint]*domain.Notification
	nextID uint
	marked []uint
}

func newStubNotificationRepo() *stubNotificationRepo {
	return &stubNotificationRepo{items: make(map[uint]*domain.Notification)}
}

func (r *stubNotificationRepo) Create(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	r.nextID++
	copy := *n
	copy.ID = r.nextID
	r.items[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubNotificationRepo) FindByID(_ context.Context, id uint) (*domain.Notification, error) {
	n, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *n
	return &out, nil
}

func (r *stubNotificationRepo) List(_ context.Context) ([]*domain.Notification, error) {
	out := make([]*domain.Notification, 0, len(r.items))
	for _, n := range r.items {
		copy := *n
		out = append(out, &copy)
	}
	return out, nil
}

func (r *stubNotificationRepo) Update(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	copy := *n
	r.items[n.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubNotificationRepo) Delete(_ context.Context, id uint) error {
	delete(r.items, id)
	return nil
}

func (r *stubNotificationRepo) MarkSent(_ context.Context, id uint) error {
	n, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	n.Sent = true
	r.marked = append(r.marked, id)
	return nil
}

type stubNotifier struct {
	delivered []uint
	err       error
}

func (n *stubNotifier) Notify(_ context.Context, notification *domain.Notification) error {
	if n.err != nil {
		return n.err
	}
	n.delivered = append(n.delivered, notification.ID)
	return nil
}

func uintPtr(v uint) *uint { return &v }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
