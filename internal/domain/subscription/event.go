package subscription

import (
	"strconv"
	"time"
)

type EventType string

const (
	EventCheckoutCompleted   EventType = "checkout.session.completed"
	EventSubscriptionUpdated EventType = "customer.subscription.updated"
	EventSubscriptionDeleted EventType = "customer.subscription.deleted"
	EventInvoicePaid         EventType = "invoice.payment_succeeded"
	EventInvoiceFailed       EventType = "invoice.payment_failed"
)

const CheckoutModeSubscription = "subscription"

const (
	MetadataBarberID = "barberId"
	MetadataPlanID   = "planId"
	MetadataUserID   = "userId"
)

// Snapshot é a visão da Stripe de uma assinatura.
type Snapshot struct {
	ID                 string
	CustomerID         string
	Status             Status
	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time
	CancelAtPeriodEnd  bool
	CanceledAt         *time.Time
}

type CheckoutSession struct {
	ID             string
	Mode           string
	SubscriptionID string
	CustomerID     string
	Metadata       map[string]string
}

// Invoice carrega valores em centavos.
type Invoice struct {
	ID              string
	SubscriptionID  string
	PaymentIntentID string
	AmountPaid      int64
	AmountDue       int64
}

// Event é um webhook já verificado e decodificado. Apenas o campo
// correspondente ao tipo vem preenchido.
type Event struct {
	ID           string
	Type         EventType
	Checkout     *CheckoutSession
	Subscription *Snapshot
	Invoice      *Invoice
}

// ParseCheckoutMetadata extrai barberId e planId do metadata da sessão.
func ParseCheckoutMetadata(meta map[string]string) (barberID, planID uint, ok bool) {
	b, err := strconv.ParseUint(meta[MetadataBarberID], 10, 64)
	if err != nil || b == 0 {
		return 0, 0, false
	}
	p, err := strconv.ParseUint(meta[MetadataPlanID], 10, 64)
	if err != nil || p == 0 {
		return 0, 0, false
	}
	return uint(b), uint(p), true
}

func CheckoutMetadata(userID, barberID, planID uint) map[string]string {
	return map[string]string{
		MetadataUserID:   strconv.FormatUint(uint64(userID), 10),
		MetadataBarberID: strconv.FormatUint(uint64(barberID), 10),
		MetadataPlanID:   strconv.FormatUint(uint64(planID), 10),
	}
}
