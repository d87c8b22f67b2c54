package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"makemeshort/internal/entities"
	"makemeshort/internal/models"
	"makemeshort/internal/repository"
)

// UserService defines the interface for user management
type UserService interface {
	List(callerID string) ([]models.UserResponse, error)
	Get(id string) (*models.UserResponse, error)
	Create(req *models.CreateUserRequest) (*models.UserResponse, error)
	Edit(id string, req *models.EditUserRequest) (*models.UserResponse, error)
	Delete(id string) error
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}

func validateRoles(roles []string) error {
	for _, r := range roles {
		if !entities.IsValidRole(r) {
			return fmt.Errorf("%w: unknown role '%s'", ErrValidation, r)
		}
	}
	return nil
}

// List returns every user except the caller. Admin views hide the caller's
// own account to avoid self-management.
func (s *userService) List(callerID string) ([]models.UserResponse, error) {
	users, err := s.userRepo.ListExcept(callerID)
	if err != nil {
		return nil, err
	}

	responses := make([]models.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, models.NewUserResponse(user))
	}
	return responses, nil
}

// Get fetches one user by id
func (s *userService) Get(id string) (*models.UserResponse, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	resp := models.NewUserResponse(user)
	return &resp, nil
}

// Create adds a user with an explicit role list
func (s *userService) Create(req *models.CreateUserRequest) (*models.UserResponse, error) {
	if err := validateRoles(req.Roles); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(req.Username, req.Email, req.FullName, string(hashedPassword), req.Roles)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, err
	}

	resp := models.NewUserResponse(user)
	return &resp, nil
}

// Edit applies a partial update: only supplied fields change, passwords are
// re-hashed, a supplied role list replaces the stored one wholesale.
func (s *userService) Edit(id string, req *models.EditUserRequest) (*models.UserResponse, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	upd := repository.UserUpdate{
		Username: req.Username,
		FullName: req.FullName,
		IsActive: req.IsActive,
	}

	if req.Roles != nil {
		if err := validateRoles(*req.Roles); err != nil {
			return nil, err
		}
		upd.Roles = req.Roles
	}

	if req.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		hash := string(hashedPassword)
		upd.PasswordHash = &hash
	}

	user, err := s.userRepo.Update(id, upd)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, err
	}

	resp := models.NewUserResponse(user)
	return &resp, nil
}

// Delete removes a user by id
func (s *userService) Delete(id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	err := s.userRepo.Delete(id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
