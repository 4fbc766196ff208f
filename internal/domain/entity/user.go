package entity

// User represents a clinic account owned by a UserType
type User struct {
	Model
	Name       string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Email      string `gorm:"type:varchar(255);not null" json:"email" validate:"required,emailpattern"`
	Password   string `gorm:"type:varchar(255);not null" json:"password" validate:"required,min=8"`
	UserTypeID int    `gorm:"not null;index" json:"userTypeId"`
}

func (User) TableName() string {
	return "users"
}
