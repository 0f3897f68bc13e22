package models

import "time"

// Um registro por (barbearia, dia da semana). DayOfWeek: 0=domingo.
type BarbershopHours struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	BarbershopID uint `gorm:"not null;uniqueIndex:idx_hours_shop_day,priority:1" json:"barbershop_id"`

	DayOfWeek int `gorm:"not null;uniqueIndex:idx_hours_shop_day,priority:2" json:"day_of_week"`

	StartHour   int  `json:"start_hour"`
	StartMinute int  `json:"start_minute"`
	EndHour     int  `json:"end_hour"`
	EndMinute   int  `json:"end_minute"`
	IsOpen      bool `gorm:"default:true" json:"is_open"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
