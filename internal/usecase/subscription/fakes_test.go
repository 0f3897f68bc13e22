package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain"
	subDomain "github.com/BruksfildServices01/barber-booking/internal/domain/subscription"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ------------------------------------------------------
// repository
// ------------------------------------------------------

type fakeRepo struct {
	barbers  map[uint]*models.Barber
	subs     map[uint]*models.Subscription
	payments []models.Payment
	plans    map[uint]*models.Plan
	nextID   uint
	findErr  error
}

var _ subDomain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		barbers: map[uint]*models.Barber{
			7: {ID: 7, UserID: 70, BarbershopID: 700, User: models.User{ID: 70, Email: "ze@example.com", Name: "Zé"}},
		},
		subs: map[uint]*models.Subscription{},
		plans: map[uint]*models.Plan{
			3: {ID: 3, Name: "Mensal", StripePriceID: "price_3", Active: true},
		},
		nextID: 100,
	}
}

func (f *fakeRepo) WithinTx(_ context.Context, fn func(tx subDomain.Repository) error) error {
	return fn(f)
}

func (f *fakeRepo) GetBarberByID(_ context.Context, id uint) (*models.Barber, error) {
	b, ok := f.barbers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *b
	for _, s := range f.subs {
		if s.BarberID == id {
			sub := *s
			out.Subscription = &sub
		}
	}
	return &out, nil
}

func (f *fakeRepo) FindByBarberID(_ context.Context, barberID uint) (*models.Subscription, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, s := range f.subs {
		if s.BarberID == barberID {
			out := *s
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRepo) FindByStripeID(_ context.Context, id string) (*models.Subscription, error) {
	for _, s := range f.subs {
		if s.StripeSubscriptionID == id {
			out := *s
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRepo) UpsertByBarber(_ context.Context, sub *models.Subscription) error {
	for id, s := range f.subs {
		if s.BarberID == sub.BarberID {
			sub.ID = id
		}
	}
	if sub.ID == 0 {
		f.nextID++
		sub.ID = f.nextID
	}
	stored := *sub
	f.subs[sub.ID] = &stored
	return nil
}

func (f *fakeRepo) Update(_ context.Context, sub *models.Subscription) error {
	if _, ok := f.subs[sub.ID]; !ok {
		return errors.New("update of unknown subscription")
	}
	stored := *sub
	f.subs[sub.ID] = &stored
	return nil
}

func (f *fakeRepo) ListDueForReconcile(_ context.Context, now time.Time) ([]models.Subscription, error) {
	var out []models.Subscription
	for _, s := range f.subs {
		st := subDomain.Status(s.Status)
		if (st == subDomain.StatusActive || st == subDomain.StatusPastDue) && s.CurrentPeriodEnd.Before(now) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeRepo) AppendPayment(_ context.Context, p *models.Payment) error {
	for _, existing := range f.payments {
		if existing.StripePaymentIntentID == p.StripePaymentIntentID && existing.Status == p.Status {
			return nil
		}
	}
	f.payments = append(f.payments, *p)
	return nil
}

func (f *fakeRepo) ListPayments(_ context.Context, subscriptionID uint) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range f.payments {
		if p.SubscriptionID == subscriptionID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetPlan(_ context.Context, id uint) (*models.Plan, error) {
	p, ok := f.plans[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (f *fakeRepo) GetActivePlan(_ context.Context) (*models.Plan, error) {
	for _, p := range f.plans {
		if p.Active {
			out := *p
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRepo) ListPlans(_ context.Context) ([]models.Plan, error) {
	var out []models.Plan
	for _, p := range f.plans {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeRepo) CreatePlan(_ context.Context, p *models.Plan) error {
	f.nextID++
	p.ID = f.nextID
	stored := *p
	f.plans[p.ID] = &stored
	return nil
}

func (f *fakeRepo) DeactivateAllPlans(_ context.Context) error {
	for _, p := range f.plans {
		p.Active = false
	}
	return nil
}

func (f *fakeRepo) SetPlanActive(_ context.Context, id uint) error {
	p, ok := f.plans[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Active = true
	return nil
}

func (f *fakeRepo) activePlans() int {
	n := 0
	for _, p := range f.plans {
		if p.Active {
			n++
		}
	}
	return n
}

// ------------------------------------------------------
// gateway
// ------------------------------------------------------

type fakeGateway struct {
	event     *subDomain.Event
	snapshots map[string]*subDomain.Snapshot

	customers     int
	lastCheckout  subDomain.CheckoutInput
	canceled      []string
	failFetch     bool
	priceRequests []subDomain.PriceInput
}

var _ subDomain.Gateway = (*fakeGateway)(nil)

func newFakeGateway() *fakeGateway {
	return &fakeGateway{snapshots: map[string]*subDomain.Snapshot{}}
}

func (g *fakeGateway) CreateCustomer(_ context.Context, _ subDomain.CustomerInput) (string, error) {
	g.customers++
	return "cus_new", nil
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, in subDomain.CheckoutInput) (*subDomain.CheckoutLink, error) {
	g.lastCheckout = in
	return &subDomain.CheckoutLink{SessionID: "cs_1", URL: "https://checkout.example/cs_1"}, nil
}

func (g *fakeGateway) GetSubscription(_ context.Context, id string) (*subDomain.Snapshot, error) {
	if g.failFetch {
		return nil, errors.New("stripe unavailable")
	}
	snap, ok := g.snapshots[id]
	if !ok {
		return nil, errors.New("no such subscription")
	}
	out := *snap
	return &out, nil
}

func (g *fakeGateway) SetCancelAtPeriodEnd(_ context.Context, id string, cancel bool) (*subDomain.Snapshot, error) {
	g.canceled = append(g.canceled, id)
	snap, ok := g.snapshots[id]
	if !ok {
		return nil, errors.New("no such subscription")
	}
	snap.CancelAtPeriodEnd = cancel
	out := *snap
	return &out, nil
}

func (g *fakeGateway) CreateRecurringPrice(_ context.Context, in subDomain.PriceInput) (*subDomain.PriceRef, error) {
	g.priceRequests = append(g.priceRequests, in)
	return &subDomain.PriceRef{ProductID: "prod_1", PriceID: "price_new"}, nil
}

func (g *fakeGateway) ParseWebhook(_ []byte, signature string) (*subDomain.Event, error) {
	if signature != "valid" {
		return nil, subDomain.ErrInvalidSignature
	}
	ev := *g.event
	return &ev, nil
}
