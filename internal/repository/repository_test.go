package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/profilehub/backend/internal/models"
	"github.com/profilehub/backend/pkg/database"
	appErr "github.com/profilehub/backend/pkg/errors"
)

type pendingSource struct{}

func (pendingSource) DB() (*gorm.DB, error) { return nil, database.ErrNotConnected }

func TestRepositoriesReportUnavailableBeforeConnect(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(pendingSource{})
	data := NewUserDataRepository(pendingSource{})
	uid := uuid.New()

	calls := map[string]error{
		"user create":   users.Create(ctx, &models.User{Email: "a@example.com"}),
		"user by email": users.GetByEmail(ctx, "a@example.com", &models.User{}),
		"user by id":    users.GetByID(ctx, uid, &models.User{}),
		"data upsert":   data.Upsert(ctx, &models.UserData{UserID: uid, Key: "k"}),
		"data get":      data.GetByKey(ctx, uid, "k", &models.UserData{}),
		"data delete":   data.DeleteByKey(ctx, uid, "k"),
	}
	_, _, listErr := data.ListByUser(ctx, uid, 20, 0)
	calls["data list"] = listErr

	for name, err := range calls {
		require.Truef(t, appErr.IsCode(err, appErr.CodeUnavailable), "%s: got %v", name, err)
		require.ErrorIsf(t, err, database.ErrNotConnected, "%s", name)
	}
}
