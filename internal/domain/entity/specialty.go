package entity

// Specialty is a medical category doctors belong to
type Specialty struct {
	Model
	Category string `gorm:"type:varchar(30);not null" json:"category" validate:"required,max=30"`
}

func (Specialty) TableName() string {
	return "specialties"
}
