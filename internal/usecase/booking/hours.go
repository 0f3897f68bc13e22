package booking

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain"
	bookingDomain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

type HoursView struct {
	IsDefault bool                     `json:"is_default"`
	Days      []bookingDomain.DayHours `json:"days"`
}

type GetHours struct {
	repo bookingDomain.Repository
}

func NewGetHours(repo bookingDomain.Repository) *GetHours {
	return &GetHours{repo: repo}
}

func (uc *GetHours) Execute(ctx context.Context, barbershopID uint) (*HoursView, error) {
	records, err := uc.repo.ListHours(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	week, isDefault := bookingDomain.ResolveWeeklyHours(records)
	return &HoursView{IsDefault: isDefault, Days: week[:]}, nil
}

// ======================================================
// SALVAR EXPEDIENTE
// ======================================================

type DayHoursInput struct {
	DayOfWeek   int  `json:"day_of_week" validate:"min=0,max=6"`
	StartHour   int  `json:"start_hour" validate:"min=0,max=23"`
	StartMinute int  `json:"start_minute" validate:"min=0,max=59"`
	EndHour     int  `json:"end_hour" validate:"min=0,max=23"`
	EndMinute   int  `json:"end_minute" validate:"min=0,max=59"`
	IsOpen      bool `json:"is_open"`
}

type SaveHoursInput struct {
	Days []DayHoursInput `json:"days" validate:"required,max=7,dive"`
}

type SaveHours struct {
	repo     bookingDomain.Repository
	audit    audit.Recorder
	validate *validator.Validate
}

func NewSaveHours(repo bookingDomain.Repository, recorder audit.Recorder) *SaveHours {
	return &SaveHours{
		repo:     repo,
		audit:    recorder,
		validate: validator.New(),
	}
}

// Execute valida tudo antes de substituir os registros da barbearia.
func (uc *SaveHours) Execute(
	ctx context.Context,
	barbershopID uint,
	userID uint,
	in SaveHoursInput,
) (*HoursView, error) {

	if err := uc.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, httperr.ErrValidation("invalid_hours", "Campo inválido: "+verrs[0].Namespace())
		}
		return nil, httperr.ErrValidation("invalid_hours", "Expediente inválido.")
	}

	days := make([]bookingDomain.DayHours, 0, len(in.Days))
	for _, d := range in.Days {
		days = append(days, bookingDomain.DayHours{
			DayOfWeek:   d.DayOfWeek,
			StartHour:   d.StartHour,
			StartMinute: d.StartMinute,
			EndHour:     d.EndHour,
			EndMinute:   d.EndMinute,
			IsOpen:      d.IsOpen,
		})
	}

	if err := bookingDomain.ValidateWeek(days); err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetBarbershopByID(ctx, barbershopID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrNotFound("barbershop_not_found", "Barbearia não encontrada.")
		}
		return nil, err
	}

	if err := uc.repo.ReplaceHours(ctx, barbershopID, bookingDomain.ToRecords(barbershopID, days)); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &userID,
		Action:       "hours_updated",
		Entity:       "barbershop_hours",
		Metadata:     map[string]any{"days": len(days)},
	})

	week, isDefault := bookingDomain.ResolveWeeklyHours(bookingDomain.ToRecords(barbershopID, days))
	return &HoursView{IsDefault: isDefault, Days: week[:]}, nil
}
