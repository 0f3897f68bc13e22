package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/BruksfildServices01/barber-booking/internal/domain"
	subDomain "github.com/BruksfildServices01/barber-booking/internal/domain/subscription"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type StatusView struct {
	HasSubscription bool                 `json:"has_subscription"`
	HasAccess       bool                 `json:"has_access"`
	Subscription    *models.Subscription `json:"subscription,omitempty"`
	Plan            *models.Plan         `json:"plan,omitempty"`
}

type GetStatus struct {
	repo subDomain.Repository
	now  func() time.Time
}

func NewGetStatus(repo subDomain.Repository) *GetStatus {
	return &GetStatus{repo: repo, now: time.Now}
}

func (uc *GetStatus) Execute(ctx context.Context, barberID uint) (*StatusView, error) {
	sub, err := uc.repo.FindByBarberID(ctx, barberID)
	if errors.Is(err, domain.ErrNotFound) {
		return &StatusView{}, nil
	}
	if err != nil {
		return nil, err
	}

	plan := sub.Plan
	return &StatusView{
		HasSubscription: true,
		HasAccess:       subDomain.HasAccess(sub, uc.now()),
		Subscription:    sub,
		Plan:            &plan,
	}, nil
}

// HasAccess é a checagem usada pelo middleware do painel do barbeiro.
func (uc *GetStatus) HasAccess(ctx context.Context, barberID uint) (bool, error) {
	view, err := uc.Execute(ctx, barberID)
	if err != nil {
		return false, err
	}
	return view.HasAccess, nil
}

// ======================================================
// AGUARDAR ATIVAÇÃO PÓS-CHECKOUT
// ======================================================

const (
	StateActive     = "active"
	StateProcessing = "processing"
)

var errNotActiveYet = errors.New("subscription not active yet")

// AwaitActivation consulta a assinatura local algumas vezes, dando tempo
// ao webhook. Se ela não ativar dentro do limite, responde "processing".
type AwaitActivation struct {
	repo     subDomain.Repository
	attempts uint64
	interval time.Duration
	now      func() time.Time
}

func NewAwaitActivation(
	repo subDomain.Repository,
	attempts uint64,
	interval time.Duration,
) *AwaitActivation {
	if attempts == 0 {
		attempts = 1
	}
	return &AwaitActivation{
		repo:     repo,
		attempts: attempts,
		interval: interval,
		now:      time.Now,
	}
}

func (uc *AwaitActivation) Execute(ctx context.Context, barberID uint) (string, error) {
	poll := func() error {
		sub, err := uc.repo.FindByBarberID(ctx, barberID)
		if errors.Is(err, domain.ErrNotFound) {
			return errNotActiveYet
		}
		if err != nil {
			return backoff.Permanent(err)
		}
		if !subDomain.HasAccess(sub, uc.now()) {
			return errNotActiveYet
		}
		return nil
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(uc.interval), uc.attempts-1),
		ctx,
	)

	err := backoff.Retry(poll, b)
	switch {
	case err == nil:
		return StateActive, nil
	case errors.Is(err, errNotActiveYet), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return StateProcessing, nil
	default:
		return "", err
	}
}
