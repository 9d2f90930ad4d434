package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ruhienterprises/careers-api/internal/dto"
	"github.com/ruhienterprises/careers-api/internal/model"
	"github.com/ruhienterprises/careers-api/internal/repository"
	"github.com/ruhienterprises/careers-api/internal/util"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthUsecase struct {
	profiles   ProfileRepositoryInterface
	sessions   repository.SessionStore
	sessionTTL time.Duration
	hashCost   int
	now        func() time.Time
}

func NewAuthUsecase(profiles ProfileRepositoryInterface, sessions repository.SessionStore, sessionTTL time.Duration) *AuthUsecase {
	return &AuthUsecase{
		profiles:   profiles,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		hashCost:   bcrypt.DefaultCost,
		now:        time.Now,
	}
}

// Login checks the password and the admin role before opening a session.
// A non-admin account gets ErrForbidden and no session.
func (uc *AuthUsecase) Login(ctx context.Context, req dto.LoginRequest) (*dto.SessionDTO, error) {
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}
	profile, err := uc.profiles.FindByEmail(ctx, req.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if !profile.IsAdmin() {
		logrus.WithField("profile_id", profile.ID).Warn("non-admin login rejected")
		return nil, ErrForbidden
	}

	now := uc.now()
	session := repository.Session{
		Token:     uuid.NewString(),
		ProfileID: profile.ID,
		CreatedAt: now,
	}
	if err := uc.sessions.Save(ctx, session, uc.sessionTTL); err != nil {
		logrus.WithError(err).WithField("profile_id", profile.ID).Error("failed to store session")
		return nil, fmt.Errorf("store session: %w", err)
	}
	return &dto.SessionDTO{
		Token:     session.Token,
		ProfileID: profile.ID,
		Email:     profile.Email,
		ExpiresAt: now.Add(uc.sessionTTL),
	}, nil
}

// Authenticate resolves a session token to an admin profile. The role is
// re-read on every call so a demoted account loses access at once.
func (uc *AuthUsecase) Authenticate(ctx context.Context, token string) (*model.Profile, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrUnauthorized
	}
	session, err := uc.sessions.Find(ctx, token)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	profile, err := uc.profiles.FindByID(ctx, session.ProfileID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		_ = uc.sessions.Delete(ctx, token)
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	if !profile.IsAdmin() {
		_ = uc.sessions.Delete(ctx, token)
		return nil, ErrForbidden
	}
	return profile, nil
}

func (uc *AuthUsecase) Logout(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return uc.sessions.Delete(ctx, token)
}

// EnsureAdmin creates or promotes the bootstrap admin account.
func (uc *AuthUsecase) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.hashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	profile, err := uc.profiles.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile = &model.Profile{Email: email}
	case err != nil:
		return fmt.Errorf("find profile: %w", err)
	}
	profile.PasswordHash = string(hash)
	profile.Role = model.RoleAdmin
	if err := uc.profiles.Save(ctx, profile); err != nil {
		return fmt.Errorf("save admin profile: %w", err)
	}
	logrus.WithField("email", email).Info("admin account ensured")
	return nil
}
