package usecase

import (
	"context"
	"errors"

	"clinic-api/internal/domain/entity"
	"clinic-api/internal/domain/repository"
	"clinic-api/pkg/jsonpatch"

	"github.com/sirupsen/logrus"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrIDMismatch = errors.New("path id does not match body id")
)

// Policy holds the per-entity deviations from the uniform CRUD flow.
type Policy[E any] struct {
	// Name is the human label used in logs and messages, e.g. "Doctor".
	Name string
	// BeforeCreate runs on the decoded record before it is inserted.
	BeforeCreate func(item *E) error
}

type CrudUsecase[E any] interface {
	Create(ctx context.Context, item *E) (*E, error)
	GetAll(ctx context.Context) ([]E, error)
	GetByID(ctx context.Context, id int) (*E, error)
	Update(ctx context.Context, id int, item *E) error
	Patch(ctx context.Context, id int, patch jsonpatch.Patch) (*E, error)
	Delete(ctx context.Context, id int) error
}

type crudUsecase[E any, P entity.Record[E]] struct {
	log    *logrus.Logger
	repo   repository.CrudRepository[E]
	policy Policy[E]
}

func NewCrudUsecase[E any, P entity.Record[E]](
	log *logrus.Logger,
	repo repository.CrudRepository[E],
	policy Policy[E],
) CrudUsecase[E] {
	return &crudUsecase[E, P]{
		log:    log,
		repo:   repo,
		policy: policy,
	}
}

func (u *crudUsecase[E, P]) Create(ctx context.Context, item *E) (*E, error) {
	// Identifiers are always assigned by the store
	P(item).SetID(0)

	if u.policy.BeforeCreate != nil {
		if err := u.policy.BeforeCreate(item); err != nil {
			u.log.Warnf("Rejected %s: %+v", u.policy.Name, err)
			return nil, err
		}
	}

	if err := u.repo.Insert(ctx, item); err != nil {
		u.log.Warnf("Failed to create %s: %+v", u.policy.Name, err)
		return nil, err
	}

	return item, nil
}

func (u *crudUsecase[E, P]) GetAll(ctx context.Context) ([]E, error) {
	items, err := u.repo.ListAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list %s: %+v", u.policy.Name, err)
		return nil, err
	}
	return items, nil
}

func (u *crudUsecase[E, P]) GetByID(ctx context.Context, id int) (*E, error) {
	item, err := u.repo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find %s: %+v", u.policy.Name, err)
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

func (u *crudUsecase[E, P]) Update(ctx context.Context, id int, item *E) error {
	if P(item).GetID() != id {
		return ErrIDMismatch
	}

	if _, err := u.GetByID(ctx, id); err != nil {
		return err
	}

	if err := u.repo.Update(ctx, item); err != nil {
		u.log.Warnf("Failed to update %s: %+v", u.policy.Name, err)
		return err
	}
	return nil
}

func (u *crudUsecase[E, P]) Patch(ctx context.Context, id int, patch jsonpatch.Patch) (*E, error) {
	item, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := u.repo.PartialUpdate(ctx, patch, item); err != nil {
		u.log.Warnf("Failed to patch %s: %+v", u.policy.Name, err)
		return nil, err
	}
	return item, nil
}

func (u *crudUsecase[E, P]) Delete(ctx context.Context, id int) error {
	item, err := u.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := u.repo.Delete(ctx, item); err != nil {
		u.log.Warnf("Failed to delete %s: %+v", u.policy.Name, err)
		return err
	}
	return nil
}
