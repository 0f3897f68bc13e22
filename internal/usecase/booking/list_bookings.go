package booking

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/domain"
	bookingDomain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

const listCacheTTL = 5 * time.Minute

type Scope string

const (
	ScopeAll      Scope = "all"
	ScopeToday    Scope = "today"
	ScopeUpcoming Scope = "upcoming"
)

func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case "", ScopeAll:
		return ScopeAll, nil
	case ScopeToday, ScopeUpcoming:
		return Scope(s), nil
	}
	return "", httperr.ErrValidation("invalid_scope", "Filtro inválido. Use all, today ou upcoming.")
}

// ======================================================
// BARBEARIA
// ======================================================

type ListBarbershopBookings struct {
	repo  bookingDomain.Repository
	cache cache.Store
	now   func() time.Time
}

func NewListBarbershopBookings(
	repo bookingDomain.Repository,
	store cache.Store,
) *ListBarbershopBookings {
	return &ListBarbershopBookings{repo: repo, cache: store, now: time.Now}
}

func (uc *ListBarbershopBookings) Execute(
	ctx context.Context,
	barbershopID uint,
	scope Scope,
) ([]dto.BookingDTO, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrNotFound("barbershop_not_found", "Barbearia não encontrada.")
		}
		return nil, err
	}

	key, cached := versionedKey(ctx, uc.cache, cache.BarbershopBookingsKey(barbershopID))

	var all []dto.BookingDTO
	hit := false
	if cached {
		var err error
		if hit, err = uc.cache.Get(ctx, key, &all); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("booking cache read failed")
		}
	}

	if !hit {
		bookings, err := uc.repo.ListBookingsForBarbershop(ctx, barbershopID)
		if err != nil {
			return nil, err
		}

		all = make([]dto.BookingDTO, 0, len(bookings))
		for _, b := range bookings {
			all = append(all, toBookingDTO(b, shop.Timezone))
		}

		if cached {
			if err := uc.cache.Set(ctx, key, all, listCacheTTL); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("booking cache write failed")
			}
		}
	}

	return filterByScope(all, scope, uc.now().In(timezone.Location(shop.Timezone))), nil
}

// ExecuteForDate lista os agendamentos de um dia (consulta por intervalo).
func (uc *ListBarbershopBookings) ExecuteForDate(
	ctx context.Context,
	barbershopID uint,
	date bookingDomain.Date,
) ([]dto.BookingDTO, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrNotFound("barbershop_not_found", "Barbearia não encontrada.")
		}
		return nil, err
	}

	start, end := timezone.StoredDayRange(date.Year, date.Month, date.Day)
	bookings, err := uc.repo.ListBookingsForPeriod(ctx, barbershopID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BookingDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingDTO(b, shop.Timezone))
	}
	return out, nil
}

// ======================================================
// CLIENTE
// ======================================================

type ListUserBookings struct {
	repo  bookingDomain.Repository
	cache cache.Store
}

func NewListUserBookings(
	repo bookingDomain.Repository,
	store cache.Store,
) *ListUserBookings {
	return &ListUserBookings{repo: repo, cache: store}
}

func (uc *ListUserBookings) Execute(
	ctx context.Context,
	userID uint,
) ([]dto.BookingDTO, error) {

	key, cached := versionedKey(ctx, uc.cache, cache.UserBookingsKey(userID))

	var out []dto.BookingDTO
	if cached {
		if hit, err := uc.cache.Get(ctx, key, &out); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("booking cache read failed")
		} else if hit {
			return out, nil
		}
	}

	bookings, err := uc.repo.ListBookingsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out = make([]dto.BookingDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingDTO(b, b.Barbershop.Timezone))
	}

	if cached {
		if err := uc.cache.Set(ctx, key, out, listCacheTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("booking cache write failed")
		}
	}
	return out, nil
}

// versionedKey lê a geração antes da consulta ao banco. Sem geração o
// cache é ignorado nessa leitura.
func versionedKey(ctx context.Context, store cache.Store, base string) (string, bool) {
	gen, err := store.Generation(ctx, base)
	if err != nil {
		log.Warn().Err(err).Str("key", base).Msg("booking cache generation read failed")
		return "", false
	}
	return cache.VersionedKey(base, gen), true
}

// ======================================================
// CLIENTES DA BARBEARIA
// ======================================================

type ListCustomers struct {
	repo bookingDomain.Repository
}

func NewListCustomers(repo bookingDomain.Repository) *ListCustomers {
	return &ListCustomers{repo: repo}
}

func (uc *ListCustomers) Execute(
	ctx context.Context,
	barbershopID uint,
	query string,
) ([]bookingDomain.Customer, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	customers, err := uc.repo.ListCustomers(ctx, barbershopID, query)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)
	for i := range customers {
		customers[i].LastBookingAt = timezone.WallClockFromStored(customers[i].LastBookingAt).In(loc)
	}
	return customers, nil
}

func filterByScope(all []dto.BookingDTO, scope Scope, nowLocal time.Time) []dto.BookingDTO {
	if scope == ScopeAll {
		return all
	}

	today := nowLocal.Format(dateLayout)
	nowKey := nowLocal.Format(dateTimeLayout)

	out := make([]dto.BookingDTO, 0, len(all))
	for _, b := range all {
		switch scope {
		case ScopeToday:
			if b.Date == today {
				out = append(out, b)
			}
		case ScopeUpcoming:
			if b.Date+" "+b.Time >= nowKey {
				out = append(out, b)
			}
		}
	}
	return out
}
