package services

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sbilibin2017/recipe-api/internal/jwt"
	"github.com/sbilibin2017/recipe-api/internal/logger"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/repositories"
	"github.com/sbilibin2017/recipe-api/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 5

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Create(ctx context.Context, user *models.UserDB) error
	Update(ctx context.Context, user *models.UserDB) error
	TouchLastLogin(ctx context.Context, id int64) error
}

// TokenIssuer signs and parses API tokens.
type TokenIssuer interface {
	Generate(ctx context.Context, userID int64) (string, *jwt.Claims, error)
	GetClaims(ctx context.Context, token string) (*jwt.Claims, error)
}

// TokenRegistry tracks live token ids so tokens can be revoked.
type TokenRegistry interface {
	Save(ctx context.Context, tokenID string, userID int64, ttl time.Duration) error
	GetUserID(ctx context.Context, tokenID string) (int64, error)
	Delete(ctx context.Context, tokenID string) error
}

// AuthService handles signup, token issue, token authentication and revocation.
type AuthService struct {
	reader   UserReader
	writer   UserWriter
	tokens   TokenIssuer
	registry TokenRegistry
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, tokens TokenIssuer, registry TokenRegistry) *AuthService {
	return &AuthService{
		reader:   reader,
		writer:   writer,
		tokens:   tokens,
		registry: registry,
	}
}

// NormalizeEmail trims the address and lower-cases its domain part,
// keeping the local part as given.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

// checkPassword enforces the password policy.
func checkPassword(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return validation.FieldError("password", "Ensure this field has at least 5 characters.")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Register creates a regular active user.
func (svc *AuthService) Register(ctx context.Context, email, password, name string) (*models.UserDB, error) {
	return svc.createUser(ctx, &models.UserDB{Email: email, Name: name, IsActive: true}, password)
}

// CreateSuperuser creates an active user with staff and superuser flags.
func (svc *AuthService) CreateSuperuser(ctx context.Context, email, password, name string) (*models.UserDB, error) {
	return svc.createUser(ctx, &models.UserDB{Email: email, Name: name, IsActive: true, IsStaff: true, IsSuperuser: true}, password)
}

func (svc *AuthService) createUser(ctx context.Context, user *models.UserDB, password string) (*models.UserDB, error) {
	user.Email = NormalizeEmail(user.Email)
	if user.Email == "" {
		return nil, validation.FieldError("email", validation.MsgBlank)
	}
	if err := checkPassword(password); err != nil {
		return nil, err
	}

	existing, err := svc.reader.GetByEmail(ctx, user.Email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if existing != nil {
		logger.Log.Infow("user already exists", "email", user.Email)
		return nil, ErrUserAlreadyExists
	}

	if user.PasswordHash, err = hashPassword(password); err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	if err := svc.writer.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	return user, nil
}

// Login checks the credentials and issues a registered token.
// Every credential problem yields ErrInvalidCredentials.
func (svc *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := svc.reader.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil || !user.IsActive {
		logger.Log.Infow("login rejected", "email", email)
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Infow("invalid credentials", "user_id", user.ID)
		return "", ErrInvalidCredentials
	}

	token, claims, err := svc.tokens.Generate(ctx, user.ID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	if err := svc.registry.Save(ctx, claims.ID, user.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
		logger.Log.Errorw("failed to register token", "user_id", user.ID, "err", err)
		return "", err
	}

	if err := svc.writer.TouchLastLogin(ctx, user.ID); err != nil {
		logger.Log.Warnw("failed to record last login", "user_id", user.ID, "err", err)
	}

	return token, nil
}

// Authenticate resolves a bearer token to its active user.
func (svc *AuthService) Authenticate(ctx context.Context, token string) (*models.UserDB, error) {
	claims, err := svc.tokens.GetClaims(ctx, token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	userID, err := svc.registry.GetUserID(ctx, claims.ID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		logger.Log.Errorw("failed to look up token", "err", err)
		return nil, err
	}
	if userID != claims.UserID {
		return nil, ErrUnauthenticated
	}

	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

// Logout revokes the token.
func (svc *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := svc.tokens.GetClaims(ctx, token)
	if err != nil {
		return ErrUnauthenticated
	}
	if err := svc.registry.Delete(ctx, claims.ID); err != nil {
		logger.Log.Errorw("failed to revoke token", "user_id", claims.UserID, "err", err)
		return err
	}
	return nil
}
