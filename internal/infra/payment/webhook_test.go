package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stripe/stripe-go/v78"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/subscription"
)

const testWebhookSecret = "whsec_test_secret"

func signPayload(payload []byte, secret string, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", at.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func newTestGateway() *StripeGateway {
	return NewStripeGateway(StripeConfig{
		SecretKey:     "sk_test_dummy",
		WebhookSecret: testWebhookSecret,
	})
}

func TestParseWebhookRejectsBadSignature(t *testing.T) {
	g := newTestGateway()
	payload := []byte(`{"id":"evt_1","object":"event","type":"customer.subscription.deleted","data":{"object":{"id":"sub_1"}}}`)

	cases := map[string]string{
		"missing":      "",
		"wrong secret": signPayload(payload, "whsec_other", time.Now()),
		"garbage":      "t=1,v1=deadbeef",
		"too old":      signPayload(payload, testWebhookSecret, time.Now().Add(-time.Hour)),
	}

	for name, sig := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := g.ParseWebhook(payload, sig); !errors.Is(err, domain.ErrInvalidSignature) {
				t.Fatalf("expected ErrInvalidSignature, got %v", err)
			}
		})
	}
}

func TestParseWebhookDecodesSubscription(t *testing.T) {
	g := newTestGateway()
	payload := []byte(`{
		"id": "evt_upd",
		"object": "event",
		"api_version": "2020-08-27",
		"type": "customer.subscription.updated",
		"data": {"object": {
			"id": "sub_1",
			"object": "subscription",
			"customer": "cus_9",
			"status": "active",
			"current_period_start": 1714564800,
			"current_period_end": 1717243200,
			"cancel_at_period_end": true,
			"canceled_at": null
		}}
	}`)

	ev, err := g.ParseWebhook(payload, signPayload(payload, testWebhookSecret, time.Now()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ev.ID != "evt_upd" || ev.Type != domain.EventSubscriptionUpdated {
		t.Fatalf("unexpected event %+v", ev)
	}
	s := ev.Subscription
	if s == nil || s.ID != "sub_1" || s.CustomerID != "cus_9" || s.Status != domain.StatusActive {
		t.Fatalf("unexpected snapshot %+v", s)
	}
	if !s.CancelAtPeriodEnd || s.CanceledAt != nil {
		t.Fatalf("unexpected cancel fields %+v", s)
	}
	if !s.CurrentPeriodEnd.Equal(time.Unix(1717243200, 0)) {
		t.Fatalf("unexpected period end %s", s.CurrentPeriodEnd)
	}
}

func TestParseWebhookDecodesInvoiceAndCheckout(t *testing.T) {
	g := newTestGateway()

	invoice := []byte(`{"id":"evt_inv","object":"event","type":"invoice.payment_failed","data":{"object":{
		"id":"in_1","object":"invoice","subscription":"sub_1","payment_intent":{"id":"pi_7","object":"payment_intent"},
		"amount_paid":0,"amount_due":4990}}}`)

	ev, err := g.ParseWebhook(invoice, signPayload(invoice, testWebhookSecret, time.Now()))
	if err != nil {
		t.Fatalf("invoice: %v", err)
	}
	if ev.Invoice == nil || ev.Invoice.SubscriptionID != "sub_1" || ev.Invoice.PaymentIntentID != "pi_7" || ev.Invoice.AmountDue != 4990 {
		t.Fatalf("unexpected invoice %+v", ev.Invoice)
	}

	checkout := []byte(`{"id":"evt_cs","object":"event","type":"checkout.session.completed","data":{"object":{
		"id":"cs_1","object":"checkout.session","mode":"subscription","customer":"cus_1","subscription":"sub_1",
		"metadata":{"barberId":"3","planId":"1"}}}}`)

	ev, err = g.ParseWebhook(checkout, signPayload(checkout, testWebhookSecret, time.Now()))
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if ev.Checkout == nil || ev.Checkout.SubscriptionID != "sub_1" || ev.Checkout.Metadata["barberId"] != "3" {
		t.Fatalf("unexpected checkout %+v", ev.Checkout)
	}
}

func TestParseWebhookAcknowledgesUndecodableObject(t *testing.T) {
	g := newTestGateway()

	cases := map[string][]byte{
		"subscription": []byte(`{"id":"evt_bad_sub","object":"event","type":"customer.subscription.deleted","data":{"object":{
			"id":"sub_1","object":"subscription","status":5,"current_period_end":"soon"}}}`),
		"invoice": []byte(`{"id":"evt_bad_inv","object":"event","type":"invoice.paid","data":{"object":{
			"id":"in_1","object":"invoice","amount_paid":"4990"}}}`),
		"checkout": []byte(`{"id":"evt_bad_cs","object":"event","type":"checkout.session.completed","data":{"object":{
			"id":"cs_1","object":"checkout.session","mode":"subscription","metadata":["barberId"]}}}`),
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			ev, err := g.ParseWebhook(payload, signPayload(payload, testWebhookSecret, time.Now()))
			if err != nil {
				t.Fatalf("expected acknowledged event, got %v", err)
			}
			if ev.ID == "" || ev.Type == "" {
				t.Fatalf("expected id and type to survive, got %+v", ev)
			}
			if ev.Checkout != nil || ev.Subscription != nil || ev.Invoice != nil {
				t.Fatalf("expected event without body, got %+v", ev)
			}
		})
	}
}

func TestIsTransient(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{&stripe.Error{HTTPStatusCode: http.StatusInternalServerError}, true},
		{&stripe.Error{HTTPStatusCode: http.StatusTooManyRequests}, true},
		{&stripe.Error{HTTPStatusCode: http.StatusBadRequest}, false},
		{&stripe.Error{HTTPStatusCode: http.StatusUnauthorized}, false},
		{errors.New("connection reset"), true},
	}

	for _, tc := range cases {
		if got := isTransient(tc.err); got != tc.want {
			t.Errorf("isTransient(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestExpandableID(t *testing.T) {
	if got := expandableID([]byte(`"sub_1"`)); got != "sub_1" {
		t.Fatalf("got %q", got)
	}
	if got := expandableID([]byte(`{"id":"pi_1"}`)); got != "pi_1" {
		t.Fatalf("got %q", got)
	}
	if got := expandableID([]byte(`null`)); got != "" {
		t.Fatalf("got %q", got)
	}
	if got := expandableID(nil); got != "" {
		t.Fatalf("got %q", got)
	}
}
