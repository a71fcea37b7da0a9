package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/profilehub/backend/internal/models"
	"github.com/profilehub/backend/pkg/database"
	appErr "github.com/profilehub/backend/pkg/errors"
)

type UserRepository interface {
	BaseRepository[models.User]
	GetByEmail(ctx context.Context, email string, dest *models.User) error
}

type userRepository struct {
	BaseRepository[models.User]
	src database.Source
}

func NewUserRepository(src database.Source) UserRepository {
	return &userRepository{BaseRepository: NewBaseRepository[models.User](src), src: src}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string, dest *models.User) error {
	db, err := conn(ctx, r.src)
	if err != nil {
		return err
	}
	if err := db.Where("email = ?", strings.ToLower(email)).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "user not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get user by email failed")
	}
	return nil
}
