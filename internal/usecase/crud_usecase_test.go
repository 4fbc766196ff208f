package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic-api/internal/domain/entity"
	"clinic-api/pkg/jsonpatch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findDoctor(doctor *entity.Doctor) func(ctx context.Context, id int) (*entity.Doctor, error) {
	return func(ctx context.Context, id int) (*entity.Doctor, error) {
		if doctor == nil || doctor.ID != id {
			return nil, nil
		}
		found := *doctor
		return &found, nil
	}
}

func TestCrudUsecase_CreateAssignsStoreID(t *testing.T) {
	repo := &MockRepository[entity.Doctor]{
		InsertFunc: func(ctx context.Context, item *entity.Doctor) error {
			assert.Zero(t, item.ID, "client supplied id must be cleared")
			item.ID = 10
			return nil
		},
	}
	uc := NewCrudUsecase[entity.Doctor](newTestLogger(), repo, DoctorPolicy())

	created, err := uc.Create(context.Background(), &entity.Doctor{Model: entity.Model{ID: 77}, LicenseNumber: "CRM-1"})
	require.NoError(t, err)
	assert.Equal(t, 10, created.ID)
	assert.Equal(t, "CRM-1", created.LicenseNumber)
}

func TestCrudUsecase_CreatePropagatesPersistenceError(t *testing.T) {
	fkErr := errors.New(`insert or update on table "doctors" violates foreign key constraint`)
	repo := &MockRepository[entity.Doctor]{
		InsertFunc: func(ctx context.Context, item *entity.Doctor) error { return fkErr },
	}
	uc := NewCrudUsecase[entity.Doctor](newTestLogger(), repo, DoctorPolicy())

	_, err := uc.Create(context.Background(), &entity.Doctor{LicenseNumber: "CRM-1"})
	assert.ErrorIs(t, err, fkErr)
}

func TestCrudUsecase_CreateUserTypeRejectsInvalidKind(t *testing.T) {
	repo := &MockRepository[entity.UserType]{}
	uc := NewCrudUsecase[entity.UserType](newTestLogger(), repo, UserTypePolicy())

	_, err := uc.Create(context.Background(), &entity.UserType{Kind: "Nurse"})
	assert.ErrorIs(t, err, ErrInvalidUserKind)
	assert.Equal(t, 0, repo.InsertCalls)

	_, err = uc.Create(context.Background(), &entity.UserType{Kind: entity.UserKindDoctor})
	assert.NoError(t, err)
	assert.Equal(t, 1, repo.InsertCalls)
}

func TestCrudUsecase_CreateAppointmentDefaultsDateTime(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	repo := &MockRepository[entity.Appointment]{}
	uc := NewCrudUsecase[entity.Appointment](newTestLogger(), repo, AppointmentPolicy(func() time.Time { return fixed }))

	created, err := uc.Create(context.Background(), &entity.Appointment{DoctorID: 1, PatientID: 2})
	require.NoError(t, err)
	assert.Equal(t, fixed, created.DateTime)

	scheduled := time.Date(2024, 4, 2, 14, 0, 0, 0, time.UTC)
	created, err = uc.Create(context.Background(), &entity.Appointment{DateTime: scheduled, DoctorID: 1, PatientID: 2})
	require.NoError(t, err)
	assert.Equal(t, scheduled, created.DateTime)
}

func TestCrudUsecase_GetAll(t *testing.T) {
	repo := &MockRepository[entity.Doctor]{
		ListAllFunc: func(ctx context.Context) ([]entity.Doctor, error) {
			return []entity.Doctor{{Model: entity.Model{ID: 1}}, {Model: entity.Model{ID: 2}}}, nil
		},
	}
	uc := NewCrudUsecase[entity.Doctor](newTestLogger(), repo, DoctorPolicy())

	items, err := uc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestCrudUsecase_GetByIDNotFound(t *testing.T) {
	repo := &MockRepository[entity.Doctor]{FindByIDFunc: findDoctor(nil)}
	uc := NewCrudUsecase[entity.Doctor](newTestLogger(), repo, DoctorPolicy())

	_, err := uc.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCrudUsecase_GetByIDFailure(t *testing.T) {
	connErr := errors.New("connection refused")
	repo := &MockRepository[entity.Doctor]{
		FindByIDFunc: func(ctx context.Context, id int) (*entity.Doctor, error) { return nil, connErr },
	}
	uc := NewCrudUsecase[entity.Doctor](newTestLogger(), repo, DoctorPolicy())

	_, err := uc.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, connErr)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestCrudUsecase_Update(t *testing.T) {
	stored := &entity.Doctor{Model: entity.Model{ID: 3}, LicenseNumber: "CRM-1"}

	t.Run("id mismatch", func(t *testing.T) {
		repo := &MockRepository[entity.Doctor]{FindByIDFunc: findDoctor(stored)}
		uc := NewCrudUsecase[entity.Doctor](newTestLogger(), repo, DoctorPolicy())

		err := uc.Update(context.Background(), 3, &entity.Doctor{Model: entity.Model{ID: 4}})
		assert.ErrorIs(t, err, ErrIDMismatch)
		assert.Equal(t, 0, repo.UpdateCalls)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &MockRepository[entity.Doctor]{FindByIDFunc: findDoctor(stored)}
		uc := NewCrudUsecase[entity.Doctor](newTestLogger(), repo, DoctorPolicy())

		err := uc.Update(context.Background(), 9, &entity.Doctor{Model: entity.Model{ID: 9}})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, 0, repo.UpdateCalls)
	})

	t.Run("replaces record", func(t *testing.T) {
		var saved *entity.Doctor
		repo := &MockRepository[entity.Doctor]{
			FindByIDFunc: findDoctor(stored),
			UpdateFunc: func(ctx context.Context, item *entity.Doctor) error {
				saved = item
				return nil
			},
		}
		uc := NewCrudUsecase[entity.Doctor](newTestLogger(), repo, DoctorPolicy())

		err := uc.Update(context.Background(), 3, &entity.Doctor{Model: entity.Model{ID: 3}, LicenseNumber: "CRM-2"})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, "CRM-2", saved.LicenseNumber)
	})
}

func TestCrudUsecase_Patch(t *testing.T) {
	stored := &entity.Doctor{Model: entity.Model{ID: 3}, LicenseNumber: "CRM-1", SpecialtyID: 1, UserID: 2}
	patch, err := jsonpatch.Decode([]byte(`[{"op":"replace","path":"/specialtyId","value":5}]`))
	require.NoError(t, err)

	t.Run("not found", func(t *testing.T) {
		repo := &MockRepository[entity.Doctor]{FindByIDFunc: findDoctor(stored)}
		uc := NewCrudUsecase[entity.Doctor](newTestLogger(), repo, DoctorPolicy())

		_, err := uc.Patch(context.Background(), 8, patch)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("returns merged record", func(t *testing.T) {
		repo := &MockRepository[entity.Doctor]{FindByIDFunc: findDoctor(stored)}
		uc := NewCrudUsecase[entity.Doctor](newTestLogger(), repo, DoctorPolicy())

		patched, err := uc.Patch(context.Background(), 3, patch)
		require.NoError(t, err)
		assert.Equal(t, &entity.Doctor{Model: entity.Model{ID: 3}, LicenseNumber: "CRM-1", SpecialtyID: 5, UserID: 2}, patched)
	})

	t.Run("invalid patch", func(t *testing.T) {
		repo := &MockRepository[entity.Doctor]{FindByIDFunc: findDoctor(stored)}
		uc := NewCrudUsecase[entity.Doctor](newTestLogger(), repo, DoctorPolicy())

		bad, err := jsonpatch.Decode([]byte(`[{"op":"replace","path":"/crm","value":"x"}]`))
		require.NoError(t, err)

		_, err = uc.Patch(context.Background(), 3, bad)
		assert.ErrorIs(t, err, jsonpatch.ErrInvalidPatch)
	})
}

func TestCrudUsecase_Delete(t *testing.T) {
	stored := &entity.Doctor{Model: entity.Model{ID: 3}, LicenseNumber: "CRM-1"}

	t.Run("not found", func(t *testing.T) {
		repo := &MockRepository[entity.Doctor]{FindByIDFunc: findDoctor(stored)}
		uc := NewCrudUsecase[entity.Doctor](newTestLogger(), repo, DoctorPolicy())

		assert.ErrorIs(t, uc.Delete(context.Background(), 4), ErrNotFound)
		assert.Equal(t, 0, repo.DeleteCalls)
	})

	t.Run("deletes the fetched row", func(t *testing.T) {
		var deleted *entity.Doctor
		repo := &MockRepository[entity.Doctor]{
			FindByIDFunc: findDoctor(stored),
			DeleteFunc: func(ctx context.Context, item *entity.Doctor) error {
				deleted = item
				return nil
			},
		}
		uc := NewCrudUsecase[entity.Doctor](newTestLogger(), repo, DoctorPolicy())

		require.NoError(t, uc.Delete(context.Background(), 3))
		require.NotNil(t, deleted)
		assert.Equal(t, 3, deleted.ID)
	})
}
