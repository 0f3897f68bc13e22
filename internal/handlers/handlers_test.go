package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/domain"
	bookingDomain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	subDomain "github.com/BruksfildServices01/barber-booking/internal/domain/subscription"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/subscription"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --------------------------------------------------
// Fakes
// --------------------------------------------------

// bookingRepo implementa só o necessário para a disponibilidade.
type bookingRepo struct {
	bookingDomain.Repository
	shops map[uint]*models.Barbershop
}

func (r *bookingRepo) GetBarbershopByID(_ context.Context, id uint) (*models.Barbershop, error) {
	if s, ok := r.shops[id]; ok {
		return s, nil
	}
	return nil, domain.ErrNotFound
}

func (r *bookingRepo) ListHours(context.Context, uint) ([]models.BarbershopHours, error) {
	return nil, nil
}

func (r *bookingRepo) ListBookingsForPeriod(context.Context, uint, time.Time, time.Time) ([]models.Booking, error) {
	return nil, nil
}

type subRepo struct {
	subDomain.Repository
	findErr error
}

func (r *subRepo) WithinTx(ctx context.Context, fn func(tx subDomain.Repository) error) error {
	return fn(r)
}

func (r *subRepo) FindByStripeID(context.Context, string) (*models.Subscription, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return nil, domain.ErrNotFound
}

type subGateway struct {
	subDomain.Gateway
}

func (subGateway) ParseWebhook(_ []byte, signature string) (*subDomain.Event, error) {
	if signature != "valid" {
		return nil, subDomain.ErrInvalidSignature
	}
	return &subDomain.Event{
		ID:   "evt_1",
		Type: subDomain.EventSubscriptionUpdated,
		Subscription: &subDomain.Snapshot{
			ID:     "sub_1",
			Status: subDomain.StatusActive,
		},
	}, nil
}

type auditReader struct {
	got audit.Filter
}

func (r *auditReader) List(_ context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	r.got = f
	return []models.AuditLog{}, 0, nil
}

func withPrincipal(p *auth.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextPrincipal, p)
		c.Next()
	}
}

func serve(r http.Handler, method, path string, body []byte, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// --------------------------------------------------
// Disponibilidade
// --------------------------------------------------

func availabilityRouter() *gin.Engine {
	repo := &bookingRepo{shops: map[uint]*models.Barbershop{
		1: {ID: 1, Name: "Navalha", Timezone: "America/Sao_Paulo"},
	}}
	h := NewPublicHandler(nil, nil, booking.NewGetAvailability(repo), nil)

	r := gin.New()
	r.GET("/barbershops/:id/availability", h.Availability)
	return r
}

func TestAvailabilityReturnsSlots(t *testing.T) {
	r := availabilityRouter()

	// 2099-01-01 é quinta-feira
	w := serve(r, http.MethodGet, "/barbershops/1/availability?date=2099-01-01", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var out dto.AvailabilityDTO
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Slots) != 10 || out.Slots[0] != "14:00" || out.Slots[9] != "20:45" {
		t.Fatalf("unexpected slots: %v", out.Slots)
	}
	if out.DayOfWeek != int(time.Thursday) {
		t.Fatalf("expected thursday, got %d", out.DayOfWeek)
	}
}

func TestAvailabilityRejectsBadInput(t *testing.T) {
	r := availabilityRouter()

	cases := []struct {
		path string
		code int
	}{
		{"/barbershops/1/availability", http.StatusBadRequest},
		{"/barbershops/1/availability?date=01/01/2099", http.StatusBadRequest},
		{"/barbershops/abc/availability?date=2099-01-01", http.StatusBadRequest},
		{"/barbershops/2/availability?date=2099-01-01", http.StatusNotFound},
	}

	for _, tc := range cases {
		if w := serve(r, http.MethodGet, tc.path, nil, nil); w.Code != tc.code {
			t.Errorf("%s: expected %d, got %d", tc.path, tc.code, w.Code)
		}
	}
}

// --------------------------------------------------
// Webhook
// --------------------------------------------------

func webhookRouter(repo *subRepo) *gin.Engine {
	h := NewSubscriptionHandler(nil, nil, nil, nil, nil,
		subscription.NewHandleWebhook(repo, subGateway{}, audit.Discard{}))

	r := gin.New()
	r.POST("/webhooks/stripe", h.Webhook)
	return r
}

func TestWebhookSignature(t *testing.T) {
	r := webhookRouter(&subRepo{})
	body := []byte(`{"id":"evt_1"}`)

	if w := serve(r, http.MethodPost, "/webhooks/stripe", body, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("missing signature: expected 400, got %d", w.Code)
	}

	w := serve(r, http.MethodPost, "/webhooks/stripe", body, map[string]string{"Stripe-Signature": "forged"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("forged signature: expected 400, got %d", w.Code)
	}

	w = serve(r, http.MethodPost, "/webhooks/stripe", body, map[string]string{"Stripe-Signature": "valid"})
	if w.Code != http.StatusOK {
		t.Fatalf("valid signature: expected 200, got %d", w.Code)
	}
}

func TestWebhookStorageFailureAsksForRetry(t *testing.T) {
	r := webhookRouter(&subRepo{findErr: errors.New("db down")})

	w := serve(r, http.MethodPost, "/webhooks/stripe", []byte(`{}`), map[string]string{"Stripe-Signature": "valid"})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

// --------------------------------------------------
// Audit logs
// --------------------------------------------------

func TestAuditLogsFilter(t *testing.T) {
	reader := &auditReader{}
	h := NewAuditLogsHandler(reader)

	p := auth.NewPrincipal(
		&models.User{ID: 1, Role: models.RoleBarber},
		&models.Barber{ID: 3, UserID: 1, BarbershopID: 7},
	)

	r := gin.New()
	r.GET("/audit-logs", withPrincipal(p), h.List)

	w := serve(r, http.MethodGet, "/audit-logs?limit=999&page=0&from=2026-01-10&to=2026-01-10&action=booking_created", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	f := reader.got
	if f.BarbershopID != 7 || f.Page != 1 || f.Limit != 50 || f.Action != "booking_created" {
		t.Fatalf("unexpected filter: %+v", f)
	}
	if f.From == nil || f.To == nil || f.To.Sub(*f.From) != 24*time.Hour {
		t.Fatalf("expected one-day range, got %v - %v", f.From, f.To)
	}
}
