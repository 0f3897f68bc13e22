package auth

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Principal é a identidade da requisição, montada uma única vez pelo
// middleware de autenticação.
type Principal struct {
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	BarbershopID *uint  `json:"barbershop_id,omitempty"`
	BarberID     *uint  `json:"barber_id,omitempty"`
}

func (p Principal) IsBarber() bool {
	return p.Role == models.RoleBarber && p.BarberID != nil && p.BarbershopID != nil
}

// PrincipalLoader resolve o usuário e o vínculo de barbeiro.
type PrincipalLoader interface {
	LoadPrincipal(ctx context.Context, userID uint) (*Principal, error)
}

// NewPrincipal monta o Principal a partir do usuário e do vínculo (opcional).
func NewPrincipal(user *models.User, barber *models.Barber) *Principal {
	p := &Principal{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	}
	if barber != nil {
		barberID := barber.ID
		shopID := barber.BarbershopID
		p.BarberID = &barberID
		p.BarbershopID = &shopID
	}
	return p
}
