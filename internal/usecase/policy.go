package usecase

import (
	"errors"
	"time"

	"clinic-api/internal/domain/entity"
)

var ErrInvalidUserKind = errors.New("invalid user type")

func UserTypePolicy() Policy[entity.UserType] {
	return Policy[entity.UserType]{
		Name: "User type",
		BeforeCreate: func(userType *entity.UserType) error {
			if !userType.Kind.IsValid() {
				return ErrInvalidUserKind
			}
			return nil
		},
	}
}

func UserPolicy() Policy[entity.User] {
	return Policy[entity.User]{Name: "User"}
}

func SpecialtyPolicy() Policy[entity.Specialty] {
	return Policy[entity.Specialty]{Name: "Specialty"}
}

func DoctorPolicy() Policy[entity.Doctor] {
	return Policy[entity.Doctor]{Name: "Doctor"}
}

func PatientPolicy() Policy[entity.Patient] {
	return Policy[entity.Patient]{Name: "Patient"}
}

// AppointmentPolicy stamps appointments submitted without a date with now().
func AppointmentPolicy(now func() time.Time) Policy[entity.Appointment] {
	if now == nil {
		now = time.Now
	}
	return Policy[entity.Appointment]{
		Name: "Appointment",
		BeforeCreate: func(appointment *entity.Appointment) error {
			if appointment.DateTime.IsZero() {
				appointment.DateTime = now()
			}
			return nil
		},
	}
}
