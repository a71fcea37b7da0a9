package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/profilehub/backend/internal/models"
	"github.com/profilehub/backend/pkg/database"
	appErr "github.com/profilehub/backend/pkg/errors"
)

type UserDataRepository interface {
	BaseRepository[models.UserData]
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.UserData, int64, error)
	GetByKey(ctx context.Context, userID uuid.UUID, key string, dest *models.UserData) error
	Upsert(ctx context.Context, obj *models.UserData) error
	DeleteByKey(ctx context.Context, userID uuid.UUID, key string) error
}

type userDataRepository struct {
	BaseRepository[models.UserData]
	src database.Source
}

func NewUserDataRepository(src database.Source) UserDataRepository {
	return &userDataRepository{BaseRepository: NewBaseRepository[models.UserData](src), src: src}
}

// ListByUser returns one page of the user's entries ordered by key, and the
// total number of entries.
func (r *userDataRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.UserData, int64, error) {
	db, err := conn(ctx, r.src)
	if err != nil {
		return nil, 0, err
	}
	owned := func() *gorm.DB { return db.Model(&models.UserData{}).Where("user_id = ?", userID) }

	var total int64
	if err := owned().Count(&total).Error; err != nil {
		return nil, 0, appErr.Wrap(err, appErr.CodeInternal, "count user data failed")
	}

	var out []models.UserData
	if err := owned().Order("key ASC").Limit(limit).Offset(offset).Find(&out).Error; err != nil {
		return nil, 0, appErr.Wrap(err, appErr.CodeInternal, "list user data failed")
	}
	return out, total, nil
}

func (r *userDataRepository) GetByKey(ctx context.Context, userID uuid.UUID, key string, dest *models.UserData) error {
	db, err := conn(ctx, r.src)
	if err != nil {
		return err
	}
	if err := db.Where("user_id = ? AND key = ?", userID, key).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "entry not found").WithMeta("key", key)
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get user data failed")
	}
	return nil
}

// Upsert inserts obj or replaces the value stored under (user_id, key).
// obj is refreshed from the stored row, so an update keeps the original
// id and created_at.
func (r *userDataRepository) Upsert(ctx context.Context, obj *models.UserData) error {
	db, err := conn(ctx, r.src)
	if err != nil {
		return err
	}
	err = db.Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		},
		clause.Returning{},
	).Create(obj).Error
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "upsert user data failed")
	}
	return nil
}

func (r *userDataRepository) DeleteByKey(ctx context.Context, userID uuid.UUID, key string) error {
	db, err := conn(ctx, r.src)
	if err != nil {
		return err
	}
	res := db.Where("user_id = ? AND key = ?", userID, key).Delete(&models.UserData{})
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "delete user data failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, "entry not found").WithMeta("key", key)
	}
	return nil
}
