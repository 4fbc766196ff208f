package entity

// Doctor represents doctor-specific profile data
type Doctor struct {
	Model
	LicenseNumber string `gorm:"type:varchar(50);not null" json:"licenseNumber" validate:"required"`
	SpecialtyID   int    `gorm:"not null;index" json:"specialtyId"`
	UserID        int    `gorm:"not null;index" json:"userId"`
}

func (Doctor) TableName() string {
	return "doctors"
}
