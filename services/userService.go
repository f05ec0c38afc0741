package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"KuskoDento/database"
	"KuskoDento/models"
	"KuskoDento/repositories"
	"KuskoDento/utils"

	"github.com/google/uuid"
)

// Account errors.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrLastUser           = errors.New("at least one user must always exist")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already registered")
)

type UserService interface {
	AuthenticateUser(ctx context.Context, username, password string) (*models.User, error)
	ValidateAndCreateUser(ctx context.Context, user *models.User) error
	UpdateUserProfile(ctx context.Context, user *models.User) error
	UpdateUserPassword(ctx context.Context, userID, newPassword string) error
	GetAllUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	DeleteUser(ctx context.Context, userID string) error
	VerifyPassword(ctx context.Context, userID, password string) bool
	CurrentSession(ctx context.Context) (*models.Session, error)
	Logout(ctx context.Context) error
}

type userService struct {
	userRepo *repositories.UserRepository
	store    *database.Store
}

func NewUserService(userRepo *repositories.UserRepository, store *database.Store) UserService {
	return &userService{userRepo: userRepo, store: store}
}

// AuthenticateUser checks credentials against the stored bcrypt hash and, on
// success, persists the session marker. On a fresh database the pair
// admin/admin bootstraps the first account.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*models.User, error) {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		if username != "admin" || password != "admin" {
			return nil, ErrInvalidCredentials
		}
		user, err := s.bootstrapAdmin(ctx, password)
		if err != nil {
			return nil, err
		}
		return user, s.saveSession(ctx, user)
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return user, s.saveSession(ctx, user)
}

// bootstrapAdmin creates the first-run administrator account.
func (s *userService) bootstrapAdmin(ctx context.Context, password string) (*models.User, error) {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := models.User{
		ID:       uuid.New().String(),
		Username: "admin",
		Password: hashed,
		Role:     models.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) saveSession(ctx context.Context, user *models.User) error {
	session := models.Session{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		LoginAt:  time.Now().UTC().Format(time.RFC3339),
	}
	return s.store.SaveSession(ctx, session)
}

func (s *userService) ValidateAndCreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = models.RoleAdmin
	}
	if err := utils.ValidateUserData(*user); err != nil {
		return fmt.Errorf("invalid user data: %w", err)
	}

	existing, err := s.userRepo.GetByUsername(ctx, user.Username)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != user.ID {
		return ErrUsernameTaken
	}

	hashed, err := utils.HashPassword(user.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hashed

	return s.userRepo.Create(ctx, user)
}

// UpdateUserProfile replaces profile fields while preserving the stored
// password hash.
func (s *userService) UpdateUserProfile(ctx context.Context, user *models.User) error {
	current, err := s.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrUserNotFound
	}
	user.Password = current.Password
	if user.Role == "" {
		user.Role = current.Role
	}
	return s.userRepo.Update(ctx, user)
}

func (s *userService) UpdateUserPassword(ctx context.Context, userID, newPassword string) error {
	if err := utils.ValidatePasswordChange(newPassword); err != nil {
		return err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hashed
	return s.userRepo.Update(ctx, user)
}

func (s *userService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.GetAll(ctx)
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// DeleteUser refuses to remove the sole remaining account, regardless of
// what the store itself would allow.
func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count <= 1 {
		return ErrLastUser
	}
	return s.userRepo.Delete(ctx, userID)
}

// VerifyPassword re-checks the caller's password before destructive
// operations.
func (s *userService) VerifyPassword(ctx context.Context, userID, password string) bool {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || user == nil {
		return false
	}
	return utils.CheckPassword(user.Password, password)
}

func (s *userService) CurrentSession(ctx context.Context) (*models.Session, error) {
	return s.store.LoadSession(ctx)
}

func (s *userService) Logout(ctx context.Context) error {
	return s.store.ClearSession(ctx)
}
