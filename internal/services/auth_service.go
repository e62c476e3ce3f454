package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"helishuttle/internal/domain"
	"helishuttle/internal/utils"
)

const adminTokenTTL = 24 * time.Hour

var errBadCredentials = domain.UnauthorizedError{Msg: "invalid email or password"}

// AdminClaims is the JWT payload handed to the dashboard.
type AdminClaims struct {
	AdminID int64 `json:"adminId"`
	jwt.RegisteredClaims
}

type LoginResult struct {
	Token   string `json:"token"`
	AdminID int64  `json:"adminId"`
}

type AuthService struct {
	Admins    AdminStore
	DenyList  TokenDenyList
	Secret    []byte
	RequestID string
	Now       func() time.Time
}

func (s AuthService) admins() AdminStore { return adminStoreOrDefault(s.Admins) }

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return LoginResult{}, domain.ValidationError{Field: "email", Msg: "email and password are required"}
	}

	admin, err := s.admins().GetByEmail(ctx, email)
	if domain.IsNotFound(err) {
		return LoginResult{}, errBadCredentials
	}
	if err != nil {
		return LoginResult{}, domain.InternalError{Err: err}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, errBadCredentials
	}

	token, err := s.issue(admin.ID)
	if err != nil {
		return LoginResult{}, domain.InternalError{Msg: "could not sign token", Err: err}
	}
	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("admin_id=%d", admin.ID))
	return LoginResult{Token: token, AdminID: admin.ID}, nil
}

func (s AuthService) issue(adminID int64) (string, error) {
	if len(s.Secret) == 0 {
		return "", errors.New("jwt secret is empty")
	}
	now := s.now()
	claims := AdminClaims{
		AdminID: adminID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprintf("%d", adminID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(adminTokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// Verify parses a bearer token and rejects expired or revoked ones.
func (s AuthService) Verify(ctx context.Context, raw string) (AdminClaims, error) {
	var claims AdminClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return AdminClaims{}, domain.UnauthorizedError{Msg: "invalid or expired token", Err: err}
	}
	if claims.AdminID <= 0 || claims.ID == "" {
		return AdminClaims{}, domain.UnauthorizedError{Msg: "invalid token claims"}
	}
	if s.DenyList != nil {
		revoked, err := s.DenyList.IsRevoked(ctx, claims.ID)
		if err != nil {
			return AdminClaims{}, domain.InternalError{Msg: "could not check token", Err: err}
		}
		if revoked {
			return AdminClaims{}, domain.UnauthorizedError{Msg: "token has been revoked"}
		}
	}
	return claims, nil
}

// Logout revokes the token until its own expiry.
func (s AuthService) Logout(ctx context.Context, claims AdminClaims) error {
	if s.DenyList == nil || claims.ExpiresAt == nil {
		return nil
	}
	if err := s.DenyList.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return domain.InternalError{Msg: "could not revoke token", Err: err}
	}
	utils.LogEvent(s.RequestID, "auth", "logout", fmt.Sprintf("admin_id=%d", claims.AdminID))
	return nil
}

// EnsureSeedAdmin creates or refreshes the configured admin. Empty
// credentials are skipped.
func (s AuthService) EnsureSeedAdmin(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	id, err := s.admins().Upsert(ctx, email, string(hash))
	if err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "auth", "seed_admin", fmt.Sprintf("admin_id=%d", id))
	return nil
}
