package models

import "time"

// Booking.Date holds the wall-clock fields chosen by the client written as
// UTC fields. Read it back only through timezone.WallClockFromStored.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID uint       `gorm:"not null;uniqueIndex:idx_booking_slot,priority:1" json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ServiceID uint    `gorm:"not null;index" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service"`

	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	Date time.Time `gorm:"type:timestamptz;not null;uniqueIndex:idx_booking_slot,priority:2" json:"date"`

	CreatedAt time.Time `json:"created_at"`
}
