package entity

import "time"

// Patient represents patient-specific profile data
type Patient struct {
	Model
	CardNumber string    `gorm:"type:varchar(50);not null" json:"cardNumber" validate:"required"`
	BirthDate  time.Time `gorm:"type:timestamptz;not null" json:"birthDate" validate:"required"`
	Active     bool      `gorm:"not null;default:false" json:"active"`
	UserID     int       `gorm:"not null;index" json:"userId"`
}

func (Patient) TableName() string {
	return "patients"
}
