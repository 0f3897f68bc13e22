package onboarding

import (
	"context"
	"errors"
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain"
	onboardingDomain "github.com/BruksfildServices01/barber-booking/internal/domain/onboarding"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

type Onboarding struct {
	repo  onboardingDomain.Repository
	audit audit.Recorder
}

func NewOnboarding(repo onboardingDomain.Repository, recorder audit.Recorder) *Onboarding {
	return &Onboarding{repo: repo, audit: recorder}
}

// ======================================================
// BARBEIRO
// ======================================================

// SetUserAsBarber vincula o usuário à barbearia. Verificação e inserção
// acontecem na mesma transação; os índices únicos cobrem a corrida.
func (uc *Onboarding) SetUserAsBarber(
	ctx context.Context,
	userID uint,
	barbershopID uint,
) (*models.Barber, error) {

	var barber *models.Barber

	err := uc.repo.WithinTx(ctx, func(tx onboardingDomain.Repository) error {
		if _, err := tx.GetUser(ctx, userID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return httperr.ErrNotFound("user_not_found", "Usuário não encontrado.")
			}
			return err
		}

		if _, err := tx.GetBarbershop(ctx, barbershopID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return httperr.ErrNotFound("barbershop_not_found", "Barbearia não encontrada.")
			}
			return err
		}

		existing, err := tx.FindBarberByBarbershop(ctx, barbershopID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if existing != nil {
			return httperr.ErrConflict("barbershop_has_barber", "Esta barbearia já possui um barbeiro.")
		}

		linked, err := tx.FindBarberByUser(ctx, userID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if linked != nil {
			return httperr.ErrConflict("user_already_barber", "Este usuário já é barbeiro de outra barbearia.")
		}

		if err := tx.SetUserRole(ctx, userID, models.RoleBarber); err != nil {
			return err
		}

		barber = &models.Barber{UserID: userID, BarbershopID: barbershopID}
		return tx.CreateBarber(ctx, barber)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &userID,
		Action:       "barber_linked",
		Entity:       "barber",
		EntityID:     &barber.ID,
	})

	return barber, nil
}

// SetUserAsClient desfaz o vínculo de barbeiro. Barbeiros com assinatura
// registrada não podem voltar a cliente por aqui.
func (uc *Onboarding) SetUserAsClient(ctx context.Context, userID uint) error {
	var shopID uint

	err := uc.repo.WithinTx(ctx, func(tx onboardingDomain.Repository) error {
		if _, err := tx.GetUser(ctx, userID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return httperr.ErrNotFound("user_not_found", "Usuário não encontrado.")
			}
			return err
		}

		barber, err := tx.FindBarberByUser(ctx, userID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		if barber != nil {
			hasSub, err := tx.HasSubscription(ctx, barber.ID)
			if err != nil {
				return err
			}
			if hasSub {
				return httperr.ErrConflict("barber_has_subscription", "Barbeiro possui assinatura registrada.")
			}
			shopID = barber.BarbershopID
			if err := tx.DeleteBarberByUser(ctx, userID); err != nil {
				return err
			}
		}

		return tx.SetUserRole(ctx, userID, models.RoleClient)
	})
	if err != nil {
		return err
	}

	if shopID != 0 {
		uc.audit.Dispatch(audit.Event{
			BarbershopID: shopID,
			UserID:       &userID,
			Action:       "barber_unlinked",
			Entity:       "barber",
		})
	}
	return nil
}

// LinkBarberByEmail é o atalho usado pelo CLI de operação.
func (uc *Onboarding) LinkBarberByEmail(
	ctx context.Context,
	email string,
	barbershopID uint,
) (*models.Barber, error) {
	user, err := uc.findUser(ctx, email)
	if err != nil {
		return nil, err
	}
	return uc.SetUserAsBarber(ctx, user.ID, barbershopID)
}

func (uc *Onboarding) ResetRole(ctx context.Context, email string) error {
	user, err := uc.findUser(ctx, email)
	if err != nil {
		return err
	}
	return uc.SetUserAsClient(ctx, user.ID)
}

// DeleteUser remove o usuário e seus dados numa única transação.
func (uc *Onboarding) DeleteUser(ctx context.Context, email string) error {
	user, err := uc.findUser(ctx, email)
	if err != nil {
		return err
	}

	return uc.repo.WithinTx(ctx, func(tx onboardingDomain.Repository) error {
		return tx.DeleteUserCascade(ctx, user.ID)
	})
}

// ======================================================
// BARBEARIAS
// ======================================================

type BarbershopInput struct {
	Name        string
	Slug        string
	Phone       string
	Address     string
	Description string
	ImageURL    string
	Timezone    string
}

func (uc *Onboarding) ListBarbershops(ctx context.Context) ([]onboardingDomain.BarbershopSummary, error) {
	return uc.repo.ListBarbershops(ctx)
}

func (uc *Onboarding) GetBarbershop(ctx context.Context, id uint) (*models.Barbershop, error) {
	shop, err := uc.repo.GetBarbershop(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrNotFound("barbershop_not_found", "Barbearia não encontrada.")
		}
		return nil, err
	}
	return shop, nil
}

func (uc *Onboarding) CreateBarbershop(ctx context.Context, in BarbershopInput) (*models.Barbershop, error) {
	name := strings.TrimSpace(in.Name)
	slug := Slugify(in.Slug)
	if slug == "" {
		slug = Slugify(name)
	}

	if name == "" || slug == "" {
		return nil, httperr.ErrValidation("barbershop_name_required", "Nome e slug da barbearia são obrigatórios.")
	}

	tz, err := resolveTimezone(in.Timezone)
	if err != nil {
		return nil, err
	}

	shop := &models.Barbershop{
		Name:        name,
		Slug:        slug,
		Phone:       strings.TrimSpace(in.Phone),
		Address:     strings.TrimSpace(in.Address),
		Description: strings.TrimSpace(in.Description),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Timezone:    tz,
	}

	if err := uc.repo.CreateBarbershop(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// UpdateProfile altera os dados públicos da barbearia (o slug é fixo).
func (uc *Onboarding) UpdateProfile(
	ctx context.Context,
	barbershopID uint,
	userID uint,
	in BarbershopInput,
) (*models.Barbershop, error) {

	shop, err := uc.GetBarbershop(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.ErrValidation("barbershop_name_required", "Nome da barbearia é obrigatório.")
	}

	tz, err := resolveTimezone(in.Timezone)
	if err != nil {
		return nil, err
	}

	shop.Name = name
	shop.Phone = strings.TrimSpace(in.Phone)
	shop.Address = strings.TrimSpace(in.Address)
	shop.Description = strings.TrimSpace(in.Description)
	shop.ImageURL = strings.TrimSpace(in.ImageURL)
	shop.Timezone = tz

	if err := uc.repo.UpdateBarbershop(ctx, shop); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &userID,
		Action:       "barbershop_updated",
		Entity:       "barbershop",
		EntityID:     &shop.ID,
	})

	return shop, nil
}

func (uc *Onboarding) findUser(ctx context.Context, email string) (*models.User, error) {
	user, err := uc.repo.FindUserByEmail(ctx, validators.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrNotFound("user_not_found", "Usuário não encontrado.")
		}
		return nil, err
	}
	return user, nil
}

func resolveTimezone(tz string) (string, error) {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return timezone.DefaultTimezone, nil
	}
	if !timezone.IsValid(tz) {
		return "", httperr.ErrValidation("invalid_timezone", "Fuso horário inválido.")
	}
	return tz, nil
}
