package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mamadbah2/sarpras/internal/domain/models"
	"github.com/mamadbah2/sarpras/internal/repository/mongodb"
)

var (
	// ErrEmailTaken is returned when registering an email that already has
	// an account.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// login failures do not leak which one it was.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Claims is the JWT payload carried by every session token. Role travels in
// the token so the middleware can enforce write access server-side without a
// user lookup per request.
type Claims struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Service handles account registration, credential login, and token
// verification.
type Service struct {
	repo      mongodb.UserRepository
	secretKey []byte
	tokenTTL  time.Duration
	logger    *zap.Logger
}

// NewService wires a new auth service instance.
func NewService(repo mongodb.UserRepository, secretKey string, tokenTTL time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:      repo,
		secretKey: []byte(secretKey),
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Register creates a regular-user account. Admins are never created through
// this path; see EnsureAdmin.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	return s.createUser(ctx, req.Name, req.Email, req.Password, models.RoleUser)
}

// Login verifies the credentials and returns a signed session token.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, mongodb.ErrUserNotFound) {
		return models.LoginResponse{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return models.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := s.signToken(user)
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return models.LoginResponse{Token: token, User: user}, nil
}

// ParseToken validates a bearer token and returns its claims.
func (s *Service) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	return claims, nil
}

// EnsureAdmin seeds the bootstrap admin account when it does not exist yet.
// Called once at startup with credentials from the environment.
func (s *Service) EnsureAdmin(ctx context.Context, name, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongodb.ErrUserNotFound) {
		return err
	}

	if _, err := s.createUser(ctx, name, email, password, models.RoleAdmin); err != nil {
		return err
	}
	s.logger.Info("admin account seeded", zap.String("email", normalizeEmail(email)))
	return nil
}

func (s *Service) createUser(ctx context.Context, name, email, password string, role models.Role) (models.User, error) {
	email = normalizeEmail(email)

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return models.User{}, ErrEmailTaken
	} else if !errors.Is(err, mongodb.ErrUserNotFound) {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *Service) signToken(user models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    "sarpras-api",
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
