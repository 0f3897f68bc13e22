package models

import "time"

// Barber liga um usuário à sua barbearia: no máximo um barbeiro por
// barbearia e uma barbearia por usuário.
type Barber struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"not null;uniqueIndex" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	BarbershopID uint       `gorm:"not null;uniqueIndex" json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"barbershop"`

	Subscription *Subscription `gorm:"foreignKey:BarberID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"subscription,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
