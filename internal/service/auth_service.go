package service

import (
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"makemeshort/internal/entities"
	"makemeshort/internal/jwt"
	"makemeshort/internal/models"
	"makemeshort/internal/repository"
)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Login(req *models.LoginRequest) (*models.LoginResponse, error)
	Signup(req *models.SignupRequest) (*models.LoginResponse, error)
	CreateSuperuser() (*models.UserResponse, error)
}

type authService struct {
	userRepo          repository.UserRepository
	jwtService        *jwt.JWTService
	allowPublicSignup bool
	superuserUsername string
	superuserPassword string
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtService *jwt.JWTService, allowPublicSignup bool, superuserUsername, superuserPassword string) AuthService {
	return &authService{
		userRepo:          userRepo,
		jwtService:        jwtService,
		allowPublicSignup: allowPublicSignup,
		superuserUsername: superuserUsername,
		superuserPassword: superuserPassword,
	}
}

// Login authenticates a user and returns a token with the sanitized user
func (s *authService) Login(req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(req.Username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.Username, user.ID, user.Roles)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.userRepo.TouchLastLogin(user.ID); err != nil {
		log.Printf("Warning: failed to update last login for %s: %v", user.Username, err)
	}

	return &models.LoginResponse{
		Token: token,
		User:  models.NewUserResponse(user),
	}, nil
}

// Signup creates a new account with default roles, when public signup is
// enabled
func (s *authService) Signup(req *models.SignupRequest) (*models.LoginResponse, error) {
	if !s.allowPublicSignup {
		return nil, ErrSignupDisabled
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(req.Username, req.Email, req.FullName, string(hashedPassword), entities.DefaultRoles)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.Username, user.ID, user.Roles)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.LoginResponse{
		Token: token,
		User:  models.NewUserResponse(user),
	}, nil
}

// CreateSuperuser bootstraps the first account from env credentials. It
// refuses to run once any user exists.
func (s *authService) CreateSuperuser() (*models.UserResponse, error) {
	count, err := s.userRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil, ErrUsersExist
	}

	if s.superuserUsername == "" || s.superuserPassword == "" {
		return nil, fmt.Errorf("superuser credentials not configured")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(s.superuserPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(s.superuserUsername, nil, nil, string(hashedPassword), []string{entities.RoleSuperUser})
	if err != nil {
		return nil, fmt.Errorf("failed to create superuser: %w", err)
	}

	resp := models.NewUserResponse(user)
	return &resp, nil
}
