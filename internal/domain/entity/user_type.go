package entity

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// UserKind is the kind of account a UserType describes
type UserKind string

const (
	UserKindPatient UserKind = "Patient"
	UserKindDoctor  UserKind = "Doctor"
)

// IsValid reports whether the kind is one of the supported values
func (k UserKind) IsValid() bool {
	return k == UserKindPatient || k == UserKindDoctor
}

// UnmarshalJSON accepts either the kind name or its ordinal (0 = Patient, 1 = Doctor).
// null leaves the kind empty, which IsValid rejects.
func (k *UserKind) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*k = ""
		return nil
	}

	var ordinal int
	if err := json.Unmarshal(data, &ordinal); err == nil {
		switch ordinal {
		case 0:
			*k = UserKindPatient
		case 1:
			*k = UserKindDoctor
		default:
			*k = UserKind(strconv.Itoa(ordinal))
		}
		return nil
	}

	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*k = UserKind(name)
	return nil
}

// UserType classifies users as patients or doctors
type UserType struct {
	Model
	Kind UserKind `gorm:"type:varchar(20);not null" json:"kind"`
}

func (UserType) TableName() string {
	return "user_types"
}
