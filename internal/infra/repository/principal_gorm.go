package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type PrincipalGormLoader struct {
	db *gorm.DB
}

func NewPrincipalGormLoader(db *gorm.DB) *PrincipalGormLoader {
	return &PrincipalGormLoader{db: db}
}

var _ auth.PrincipalLoader = (*PrincipalGormLoader)(nil)

func (l *PrincipalGormLoader) LoadPrincipal(
	ctx context.Context,
	userID uint,
) (*auth.Principal, error) {

	var user models.User
	if err := l.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, notFound(err)
	}

	var barber models.Barber
	err := l.db.WithContext(ctx).Where("user_id = ?", userID).First(&barber).Error
	switch {
	case err == nil:
		return auth.NewPrincipal(&user, &barber), nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return auth.NewPrincipal(&user, nil), nil
	default:
		return nil, err
	}
}
