package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/domain"
)

// notFound traduz gorm.ErrRecordNotFound para domain.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
