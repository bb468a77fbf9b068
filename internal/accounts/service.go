// Package accounts implements the account/session provider on PostgreSQL.
package accounts

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/anonto42/snapgram/backend/internal/errs"
	"github.com/anonto42/snapgram/backend/internal/models"
)

// sessionTTL bounds how long an issued token stays valid even if never
// signed out.
const sessionTTL = 72 * time.Hour

// Service defines the interface for account and session operations
type Service interface {
	CreateAccount(ctx context.Context, email, password, name string) (*models.Account, error)
	// CreateSession exchanges email+password for a session token.
	CreateSession(ctx context.Context, email, password string) (string, *models.Session, error)
	// AccountForSession resolves a session token to its account. Fails with
	// an unauthorized kind for bad, expired or signed-out tokens.
	AccountForSession(ctx context.Context, token string) (*models.Account, error)
	// VerifySession validates a token and returns its claims without a
	// database round-trip for the account record.
	VerifySession(ctx context.Context, token string) (*models.JwtCustomClaims, error)
	DeleteSession(ctx context.Context, token string) error
}

// GormService implements Service on PostgreSQL via GORM
type GormService struct {
	db        *gorm.DB
	jwtSecret []byte
}

// NewGormService creates a new GormService
func NewGormService(db *gorm.DB, jwtSecret string) *GormService {
	return &GormService{db: db, jwtSecret: []byte(jwtSecret)}
}

// CreateAccount creates an account with a generated unique identifier and a
// bcrypt-hashed password.
func (s *GormService) CreateAccount(ctx context.Context, email, password, name string) (*models.Account, error) {
	const op = "accounts.CreateAccount"

	var existing models.Account
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, errs.Errorf(op, errs.KindConflict, "account with email %s already exists", email)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.E(op, errs.KindTransient, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.E(op, errs.KindTransient, err)
	}

	account := &models.Account{
		ID:       uuid.NewString(),
		Email:    email,
		Name:     name,
		Password: string(hashed),
	}
	if err := s.db.WithContext(ctx).Create(account).Error; err != nil {
		return nil, errs.E(op, errs.KindTransient, err)
	}
	return account, nil
}

// CreateSession authenticates the credentials, records a session row and
// issues a JWT whose ID matches the row.
func (s *GormService) CreateSession(ctx context.Context, email, password string) (string, *models.Session, error) {
	const op = "accounts.CreateSession"

	var account models.Account
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, errs.Errorf(op, errs.KindUnauthorized, "invalid credentials")
		}
		return "", nil, errs.E(op, errs.KindTransient, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return "", nil, errs.Errorf(op, errs.KindUnauthorized, "invalid credentials")
	}

	session := &models.Session{
		ID:        uuid.NewString(),
		AccountID: account.ID,
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return "", nil, errs.E(op, errs.KindTransient, err)
	}

	token, err := signSessionToken(s.jwtSecret, &account, session)
	if err != nil {
		return "", nil, errs.E(op, errs.KindTransient, err)
	}
	return token, session, nil
}

// AccountForSession resolves a token to the account it was issued for
func (s *GormService) AccountForSession(ctx context.Context, token string) (*models.Account, error) {
	const op = "accounts.AccountForSession"

	claims, err := s.VerifySession(ctx, token)
	if err != nil {
		return nil, err
	}

	var account models.Account
	if err := s.db.WithContext(ctx).First(&account, "id = ?", claims.AccountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Errorf(op, errs.KindNotFound, "account %s not found", claims.AccountID)
		}
		return nil, errs.E(op, errs.KindTransient, err)
	}
	return &account, nil
}

// VerifySession checks the token signature and that the backing session row
// is still live.
func (s *GormService) VerifySession(ctx context.Context, token string) (*models.JwtCustomClaims, error) {
	const op = "accounts.VerifySession"

	claims, err := ParseSessionToken(s.jwtSecret, token)
	if err != nil {
		return nil, errs.E(op, errs.KindUnauthorized, err)
	}

	var session models.Session
	if err := s.db.WithContext(ctx).First(&session, "id = ?", claims.RegisteredClaims.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Errorf(op, errs.KindUnauthorized, "session revoked")
		}
		return nil, errs.E(op, errs.KindTransient, err)
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, errs.Errorf(op, errs.KindUnauthorized, "session expired")
	}
	return claims, nil
}

// DeleteSession destroys the session behind the token. Deleting an
// already-gone session succeeds.
func (s *GormService) DeleteSession(ctx context.Context, token string) error {
	const op = "accounts.DeleteSession"

	claims, err := ParseSessionToken(s.jwtSecret, token)
	if err != nil {
		return errs.E(op, errs.KindUnauthorized, err)
	}

	if err := s.db.WithContext(ctx).Delete(&models.Session{}, "id = ?", claims.RegisteredClaims.ID).Error; err != nil {
		return errs.E(op, errs.KindTransient, err)
	}
	return nil
}

// signSessionToken issues the JWT for a session
func signSessionToken(secret []byte, account *models.Account, session *models.Session) (string, error) {
	claims := &models.JwtCustomClaims{
		AccountID: account.ID,
		Email:     account.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseSessionToken validates a token's signature and expiry and returns its
// claims.
func ParseSessionToken(secret []byte, tokenString string) (*models.JwtCustomClaims, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
