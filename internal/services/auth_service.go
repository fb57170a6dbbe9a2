package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mealshare/mealapi/internal/config"
	"github.com/mealshare/mealapi/internal/dto"
	"github.com/mealshare/mealapi/internal/models"
	"github.com/mealshare/mealapi/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRoleMismatch       = errors.New("provided role doesn't match registered role")
	ErrAdminSignupDenied  = errors.New("admin registration is not allowed for this email")
	ErrInvalidRole        = errors.New("role must be USER or ADMIN")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	users       repository.UserRepository
	cfg         *config.Config
	adminEmails []string
}

func NewAuthService(users repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		users:       users,
		cfg:         cfg,
		adminEmails: parseCSV(cfg.AdminEmails),
	}
}

func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if len(req.Email) == 0 || len(req.Password) < 8 {
		return nil, errors.New("email required and password must be at least 8 characters")
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}
	// ADMIN self-registration only for allow-listed bootstrap emails.
	if role == models.RoleAdmin && !contains(s.adminEmails, req.Email) {
		return nil, ErrAdminSignupDenied
	}

	existing, err := s.users.GetByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Email:    req.Email,
		Password: string(hash),
		Role:     role,
	}
	if err := s.users.Create(&user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	resp := dto.NewUserResponse(&user)
	return &resp, nil
}

// Authenticate verifies credentials and issues a bearer token. A
// non-empty role in the request that disagrees with the stored role is
// an authentication failure, not something to silently correct.
func (s *AuthService) Authenticate(req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.users.GetByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if req.Role != "" && req.Role != user.Role {
		return nil, ErrRoleMismatch
	}

	expires := time.Now().Add(s.cfg.JWTExpiry)
	token, err := s.generateToken(user, expires)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		Expires:     expires,
	}, nil
}

func (s *AuthService) GetByID(id uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// IsAdmin reports the user's live role. Token role claims are never
// consulted here; a stale token cannot confer admin rights.
func (s *AuthService) IsAdmin(id uuid.UUID) (bool, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return false, err
	}
	return user != nil && user.IsAdmin(), nil
}

func (s *AuthService) UpdateRole(id uuid.UUID, role string) (*dto.UserResponse, error) {
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	user, err := s.users.UpdateRole(id, role)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *AuthService) generateToken(user *models.User, expires time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"iat":  time.Now().Unix(),
		"exp":  expires.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
