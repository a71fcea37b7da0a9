package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/profilehub/backend/internal/models"
	"github.com/profilehub/backend/internal/repository"
	appErr "github.com/profilehub/backend/pkg/errors"
)

// TokenTTL is the lifetime of an access token and of the cookie carrying it.
const TokenTTL = 24 * time.Hour

type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Profile(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	hmacSecret []byte
	now        func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, secret []byte) AuthService {
	return &authService{
		userRepo:   userRepo,
		hmacSecret: secret,
		now:        time.Now,
	}
}

func (s *authService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	ph, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(ph),
		Name:         strings.TrimSpace(name),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if appErr.IsCode(err, appErr.CodeConflict) {
			return nil, appErr.Wrap(err, appErr.CodeConflict, "email already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	var user models.User
	if err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email), &user); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return "", nil, appErr.New(appErr.CodeUnauthorized, "invalid credentials")
		}
		return "", nil, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, appErr.New(appErr.CodeUnauthorized, "invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID.String(),
		"iat": s.now().Unix(),
		"exp": s.now().Add(TokenTTL).Unix(),
	})

	tokenString, err := token.SignedString(s.hmacSecret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	return tokenString, &user, nil
}

func (s *authService) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.userRepo.GetByID(ctx, userID, &user); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return nil, appErr.New(appErr.CodeUnauthorized, "account no longer exists")
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return &user, nil
}
