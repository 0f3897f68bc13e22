package audit

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Logger grava eventos de auditoria na tabela audit_logs.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Write(ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		BarbershopID: ev.BarbershopID,
		UserID:       ev.UserID,
		Action:       ev.Action,
		Entity:       ev.Entity,
		EntityID:     ev.EntityID,
		Metadata:     metaJSON,
	}

	return l.db.Create(&row).Error
}

// Filter restringe a listagem; campos vazios não filtram.
type Filter struct {
	BarbershopID uint
	Action       string
	Entity       string
	From         *time.Time
	To           *time.Time
	Page         int
	Limit        int
}

// List devolve uma página dos logs da barbearia, do mais recente ao mais antigo.
func (l *Logger) List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error) {
	q := l.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("barbershop_id = ?", f.BarbershopID)

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&logs).Error

	return logs, total, err
}
