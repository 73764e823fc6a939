package service

import (
	"context"
	"errors"

	"github.com/exchangeaddons/paypal-pro/internal/core/domain"
)

type fakeNonces struct {
	valid map[string]string // token -> action
}

func newFakeNonces() *fakeNonces {
	return &fakeNonces{valid: map[string]string{}}
}

func (n *fakeNonces) Issue(action string) string {
	token := "token-" + action
	n.valid[token] = action
	return token
}

func (n *fakeNonces) Verify(token, action string) bool {
	return n.valid[token] == action && token != ""
}

type fakeGateway struct {
	result *domain.PaymentResult
	err    error
	calls  int
	extra  map[string]string
}

func (g *fakeGateway) DoPayment(_ context.Context, _ domain.Customer, _ domain.CartContents, extra map[string]string) (*domain.PaymentResult, error) {
	g.calls++
	g.extra = extra
	return g.result, g.err
}

type fakeCustomers struct {
	customer *domain.Customer
}

func (c fakeCustomers) CurrentCustomer(context.Context) (*domain.Customer, error) {
	if c.customer == nil {
		return nil, domain.ErrCustomerNotFound
	}
	return c.customer, nil
}

type fakeLedger struct {
	entries []domain.Transaction
	err     error
}

func (l *fakeLedger) AddTransaction(_ context.Context, txn domain.Transaction) (string, error) {
	if l.err != nil {
		return "", l.err
	}
	l.entries = append(l.entries, txn)
	return "txn-1", nil
}

type fakeDialog struct {
	html string
	err  error
}

func (d fakeDialog) Render(context.Context, string) (string, error) {
	return d.html, d.err
}

type fakeStore struct {
	values  map[string][]byte
	getErr  error
	setErr  error
	setHits int
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: map[string][]byte{}}
}

func (s *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	v, ok := s.values[key]
	if !ok {
		return nil, domain.ErrOptionNotFound
	}
	return v, nil
}

func (s *fakeStore) Set(_ context.Context, key string, value []byte) error {
	s.setHits++
	if s.setErr != nil {
		return s.setErr
	}
	s.values[key] = value
	return nil
}

// recordingForm captures the last view it was asked to render.
type recordingForm struct {
	last   domain.SettingsView
	wizard bool
}

func (f *recordingForm) RenderPage(view domain.SettingsView) (string, error) {
	f.last, f.wizard = view, false
	return "page:" + view.Settings.APIUsername, nil
}

func (f *recordingForm) RenderWizard(view domain.SettingsView) (string, error) {
	f.last, f.wizard = view, true
	return "wizard:" + view.Settings.APIUsername, nil
}

var errBoom = errors.New("boom")
