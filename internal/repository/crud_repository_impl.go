package repository

import (
	"context"
	"errors"

	domainRepo "clinic-api/internal/domain/repository"
	"clinic-api/pkg/jsonpatch"

	"gorm.io/gorm"
)

// ErrRecordVanished is returned when an update matched no row.
var ErrRecordVanished = errors.New("record no longer exists")

type crudRepository[E any] struct {
	db *gorm.DB
}

func NewCrudRepository[E any](db *gorm.DB) domainRepo.CrudRepository[E] {
	return &crudRepository[E]{db: db}
}

func (r *crudRepository[E]) Insert(ctx context.Context, item *E) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *crudRepository[E]) ListAll(ctx context.Context) ([]E, error) {
	items := make([]E, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *crudRepository[E]) FindByID(ctx context.Context, id int) (*E, error) {
	var item E
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Update replaces every column of the row. Unlike Save it never falls back to an insert.
func (r *crudRepository[E]) Update(ctx context.Context, item *E) error {
	result := r.db.WithContext(ctx).Model(item).Select("*").Updates(item)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordVanished
	}
	return nil
}

func (r *crudRepository[E]) PartialUpdate(ctx context.Context, patch jsonpatch.Patch, item *E) error {
	if err := jsonpatch.Apply(patch, item); err != nil {
		return err
	}
	return r.Update(ctx, item)
}

func (r *crudRepository[E]) Delete(ctx context.Context, item *E) error {
	return r.db.WithContext(ctx).Delete(item).Error
}
