package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"SareeStoreAPI/internal/model"
	"SareeStoreAPI/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLen = 8
)

type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type AuthService struct {
	Users UserStore
}

func NewAuthService(u UserStore) *AuthService {
	return &AuthService{Users: u}
}

func (s *AuthService) validatePassword(pw string) error {
	if len(pw) < MinPasswordLen {
		return invalid("password", fmt.Sprintf("password too short: must be at least %d characters", MinPasswordLen))
	}
	return nil
}

func (s *AuthService) create(ctx context.Context, email, password, fullName string, admin bool) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := s.validatePassword(password); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &model.User{Email: email, PasswordHash: string(hash), FullName: optional(fullName), IsAdmin: admin}
	err = s.Users.Create(ctx, u)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

// Register creates a shopper account.
func (s *AuthService) Register(ctx context.Context, email, password, fullName string) (*model.User, error) {
	return s.create(ctx, email, password, fullName, false)
}

// RegisterAdmin creates a back-office account. It is only reachable from the CLI.
func (s *AuthService) RegisterAdmin(ctx context.Context, email, password, fullName string) (*model.User, error) {
	return s.create(ctx, email, password, fullName, true)
}

// Login authenticates using email + password and returns the user (without passwordhash).
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.Users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		// do not reveal whether email exists
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	u.PasswordHash = ""
	return u, nil
}

func (s *AuthService) Me(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}
