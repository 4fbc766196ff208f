package usecase

import (
	"context"
	"errors"
	"io"

	"clinic-api/internal/domain/entity"
	"clinic-api/internal/domain/repository"
	"clinic-api/pkg/jsonpatch"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure MockRepository implements CrudRepository
var _ repository.CrudRepository[entity.Doctor] = (*MockRepository[entity.Doctor])(nil)

// MockRepository is a func-field mock of CrudRepository.
type MockRepository[E any] struct {
	InsertFunc        func(ctx context.Context, item *E) error
	ListAllFunc       func(ctx context.Context) ([]E, error)
	FindByIDFunc      func(ctx context.Context, id int) (*E, error)
	UpdateFunc        func(ctx context.Context, item *E) error
	PartialUpdateFunc func(ctx context.Context, patch jsonpatch.Patch, item *E) error
	DeleteFunc        func(ctx context.Context, item *E) error

	InsertCalls int
	UpdateCalls int
	DeleteCalls int
}

func (m *MockRepository[E]) Insert(ctx context.Context, item *E) error {
	m.InsertCalls++
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, item)
	}
	return nil
}

func (m *MockRepository[E]) ListAll(ctx context.Context) ([]E, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, errors.New("ListAllFunc not implemented in mock")
}

func (m *MockRepository[E]) FindByID(ctx context.Context, id int) (*E, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, errors.New("FindByIDFunc not implemented in mock")
}

func (m *MockRepository[E]) Update(ctx context.Context, item *E) error {
	m.UpdateCalls++
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, item)
	}
	return nil
}

func (m *MockRepository[E]) PartialUpdate(ctx context.Context, patch jsonpatch.Patch, item *E) error {
	if m.PartialUpdateFunc != nil {
		return m.PartialUpdateFunc(ctx, patch, item)
	}
	return jsonpatch.Apply(patch, item)
}

func (m *MockRepository[E]) Delete(ctx context.Context, item *E) error {
	m.DeleteCalls++
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, item)
	}
	return nil
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
