package entity

import "time"

// Appointment books a patient with a doctor.
// DateTime falls back to the creation time when left empty.
type Appointment struct {
	Model
	DateTime  time.Time `gorm:"type:timestamptz;not null" json:"dateTime"`
	DoctorID  int       `gorm:"not null;index" json:"doctorId"`
	PatientID int       `gorm:"not null;index" json:"patientId"`
}

func (Appointment) TableName() string {
	return "appointments"
}
