package subscription

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/domain"
	subDomain "github.com/BruksfildServices01/barber-booking/internal/domain/subscription"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const defaultCurrency = "brl"

type PlanInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Currency    string
}

// Plans mantém o invariante de exatamente um plano ativo: toda troca
// desativa todos e ativa um, na mesma transação.
type Plans struct {
	repo    subDomain.Repository
	gateway subDomain.Gateway
}

func NewPlans(repo subDomain.Repository, gateway subDomain.Gateway) *Plans {
	return &Plans{repo: repo, gateway: gateway}
}

// Setup cria produto e preço mensal na Stripe e registra o plano como o
// único ativo.
func (uc *Plans) Setup(ctx context.Context, in PlanInput) (*models.Plan, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.ErrValidation("plan_name_required", "Nome do plano é obrigatório.")
	}
	if !in.Price.IsPositive() {
		return nil, httperr.ErrValidation("invalid_price", "O preço deve ser maior que zero.")
	}

	currency := strings.ToLower(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = defaultCurrency
	}
	if len(currency) != 3 {
		return nil, httperr.ErrValidation("invalid_currency", "Moeda deve ter 3 letras (ex.: brl).")
	}

	price := in.Price.Round(2)

	ref, err := uc.gateway.CreateRecurringPrice(ctx, subDomain.PriceInput{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Amount:      price,
		Currency:    currency,
	})
	if err != nil {
		return nil, httperr.ErrExternal("payment_provider_error", err)
	}

	plan := &models.Plan{
		Name:            name,
		Description:     strings.TrimSpace(in.Description),
		Price:           price,
		Currency:        currency,
		StripeProductID: ref.ProductID,
		StripePriceID:   ref.PriceID,
		Active:          true,
	}

	err = uc.repo.WithinTx(ctx, func(tx subDomain.Repository) error {
		if err := tx.DeactivateAllPlans(ctx); err != nil {
			return err
		}
		return tx.CreatePlan(ctx, plan)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Uint("plan_id", plan.ID).
		Str("stripe_price_id", plan.StripePriceID).
		Msg("plan created and activated")

	return plan, nil
}

func (uc *Plans) Activate(ctx context.Context, planID uint) (*models.Plan, error) {
	var plan *models.Plan

	err := uc.repo.WithinTx(ctx, func(tx subDomain.Repository) error {
		p, err := tx.GetPlan(ctx, planID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return httperr.ErrNotFound("plan_not_found", "Plano não encontrado.")
			}
			return err
		}

		if err := tx.DeactivateAllPlans(ctx); err != nil {
			return err
		}
		if err := tx.SetPlanActive(ctx, planID); err != nil {
			return err
		}

		p.Active = true
		plan = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (uc *Plans) List(ctx context.Context) ([]models.Plan, error) {
	return uc.repo.ListPlans(ctx)
}

func (uc *Plans) Active(ctx context.Context) (*models.Plan, error) {
	plan, err := uc.repo.GetActivePlan(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrNotFound("no_active_plan", "Nenhum plano disponível no momento.")
		}
		return nil, err
	}
	return plan, nil
}
