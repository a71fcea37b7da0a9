package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/profilehub/backend/pkg/database"
	appErr "github.com/profilehub/backend/pkg/errors"
)

// BaseRepository defines common CRUD operations.
type BaseRepository[T any] interface {
	Create(ctx context.Context, obj *T) error
	GetByID(ctx context.Context, id any, dest *T) error
	Update(ctx context.Context, obj *T) error
	Delete(ctx context.Context, id any) error
}

type baseRepository[T any] struct {
	src database.Source
}

func NewBaseRepository[T any](src database.Source) BaseRepository[T] {
	return &baseRepository[T]{src: src}
}

// conn resolves the handle per call: the database may still be connecting
// when the first requests arrive.
func conn(ctx context.Context, src database.Source) (*gorm.DB, error) {
	db, err := src.DB()
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeUnavailable, "database unavailable")
	}
	return db.WithContext(ctx), nil
}

func writeErr(err error, message string) error {
	if database.IsUniqueViolation(err) {
		return appErr.Wrap(err, appErr.CodeConflict, "entity already exists")
	}
	return appErr.Wrap(err, appErr.CodeInternal, message)
}

func (r *baseRepository[T]) Create(ctx context.Context, obj *T) error {
	db, err := conn(ctx, r.src)
	if err != nil {
		return err
	}
	if err := db.Create(obj).Error; err != nil {
		return writeErr(err, "create entity failed")
	}
	return nil
}

func (r *baseRepository[T]) GetByID(ctx context.Context, id any, dest *T) error {
	db, err := conn(ctx, r.src)
	if err != nil {
		return err
	}
	if err := db.First(dest, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "entity not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get entity failed")
	}
	return nil
}

func (r *baseRepository[T]) Update(ctx context.Context, obj *T) error {
	db, err := conn(ctx, r.src)
	if err != nil {
		return err
	}
	if err := db.Save(obj).Error; err != nil {
		return writeErr(err, "update entity failed")
	}
	return nil
}

func (r *baseRepository[T]) Delete(ctx context.Context, id any) error {
	db, err := conn(ctx, r.src)
	if err != nil {
		return err
	}
	var t T
	res := db.Delete(&t, "id = ?", id)
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "delete entity failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, fmt.Sprintf("entity %v not found", id))
	}
	return nil
}
