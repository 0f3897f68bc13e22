package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

var _ domain.Repository = (*CatalogGormRepository)(nil)

func (r *CatalogGormRepository) WithinTx(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&CatalogGormRepository{db: tx})
	})
}

func (r *CatalogGormRepository) ListServices(
	ctx context.Context,
	barbershopID uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ?", barbershopID).
		Order("name ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *CatalogGormRepository) GetService(
	ctx context.Context,
	barbershopID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", serviceID, barbershopID).
		First(&service).Error; err != nil {
		return nil, notFound(err)
	}
	return &service, nil
}

func (r *CatalogGormRepository) CreateService(
	ctx context.Context,
	s *models.Service,
) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *CatalogGormRepository) UpdateService(
	ctx context.Context,
	s *models.Service,
) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *CatalogGormRepository) CountBookings(
	ctx context.Context,
	serviceID uint,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("service_id = ?", serviceID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *CatalogGormRepository) DeleteService(
	ctx context.Context,
	serviceID uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Service{}, serviceID).Error
}
