package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskvault/taskvault/internal/apperr"
	"github.com/taskvault/taskvault/internal/logging"
	"github.com/taskvault/taskvault/internal/metrics"
	"github.com/taskvault/taskvault/internal/models"
	"github.com/taskvault/taskvault/internal/repository"
	"github.com/taskvault/taskvault/internal/sessions"
	"github.com/taskvault/taskvault/pkg/tokens"
	"golang.org/x/crypto/bcrypt"
)

// maxLoginAttempts is the per-IP failed login threshold inside the attempt
// window.
const maxLoginAttempts = 5

type AuthService struct {
	repo     repository.Repository
	sessions *sessions.Store
	issuer   *tokens.Issuer
	log      *logging.Logger
}

func NewAuthService(repo repository.Repository, store *sessions.Store, issuer *tokens.Issuer, log *logging.Logger) *AuthService {
	return &AuthService{
		repo:     repo,
		sessions: store,
		issuer:   issuer,
		log:      log,
	}
}

// Register creates a user, issues a token pair and allowlists the refresh
// token. The returned response never carries password material.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           id.String(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, apperr.Conflict(apperr.CodeEmailExists, "email already registered")
		}
		return nil, err
	}

	pair, err := s.issueAndStore(ctx, user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "user registered", logging.UserID(user.ID))

	return &models.AuthResponse{
		User:         *user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Login authenticates by email and password, enforcing the per-IP attempt
// limit. The attempt counter is read before the credential check, so a locked
// IP causes no state change.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest, clientIP string) (*models.AuthResponse, error) {
	attempts, err := s.sessions.LoginAttempts(ctx, clientIP)
	if err != nil {
		return nil, err
	}
	if attempts >= maxLoginAttempts {
		metrics.RateLimitHits.Inc()
		s.log.WarnContext(ctx, "login rejected by attempt limit", logging.IP(clientIP))
		return nil, apperr.Forbidden(apperr.CodeTooManyAttempts, "too many login attempts, try again later")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, s.failLogin(ctx, clientIP, "unknown email")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, s.failLogin(ctx, clientIP, "password mismatch")
	}

	if err := s.sessions.ResetLoginAttempts(ctx, clientIP); err != nil {
		return nil, err
	}

	pair, err := s.issueAndStore(ctx, user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.InfoContext(ctx, "login succeeded", logging.UserID(user.ID), logging.IP(clientIP))

	return &models.AuthResponse{
		User:         *user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

func (s *AuthService) failLogin(ctx context.Context, clientIP, reason string) error {
	metrics.LoginsTotal.WithLabelValues("failure").Inc()
	if _, err := s.sessions.IncrementLoginAttempts(ctx, clientIP); err != nil {
		return err
	}
	s.log.WarnContext(ctx, "login failed",
		logging.IP(clientIP),
		"reason", reason,
	)
	return apperr.Unauthorized(apperr.CodeInvalidCredentials, "invalid credentials")
}

// Refresh rotates a refresh token: verify, check the allowlist, delete the
// old entry, issue and store a new pair. All failures collapse into the same
// 401 so a rotated-out token is indistinguishable from an invalid one, but
// the cause is logged distinctly.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	invalid := apperr.Unauthorized(apperr.CodeInvalidRefreshToken, "invalid refresh token")

	claims, err := s.issuer.VerifyRefresh(refreshToken)
	if err != nil {
		reason := "signature invalid"
		if errors.Is(err, tokens.ErrExpiredToken) {
			reason = "expired"
		}
		s.log.WarnContext(ctx, "refresh rejected", "reason", reason)
		return nil, invalid
	}

	ok, err := s.sessions.ValidateRefreshToken(ctx, claims.Subject, refreshToken)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.log.WarnContext(ctx, "refresh rejected", "reason", "not in allowlist", logging.UserID(claims.Subject))
		return nil, invalid
	}

	if err := s.sessions.DeleteRefreshToken(ctx, claims.Subject, refreshToken); err != nil {
		return nil, err
	}

	pair, err := s.issueAndStore(ctx, claims.Subject, claims.Email)
	if err != nil {
		return nil, err
	}

	return &models.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Logout blacklists the presented access token for the remainder of its
// lifetime. An already-expired token still logs out successfully; there is
// nothing left to revoke.
func (s *AuthService) Logout(ctx context.Context, authorizationHeader string) (*models.MessageResponse, error) {
	parts := strings.Split(authorizationHeader, " ")
	if authorizationHeader == "" || len(parts) != 2 || parts[1] == "" {
		return nil, apperr.Validation(apperr.CodeTokenMissing, "authorization header missing or malformed")
	}
	raw := parts[1]

	claims, err := s.issuer.Decode(raw)
	if err != nil {
		return nil, apperr.Validation(apperr.CodeTokenInvalid, "invalid token format")
	}

	if claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining > 0 {
			if err := s.sessions.BlacklistToken(ctx, raw, remaining); err != nil {
				return nil, err
			}
			metrics.TokensRevoked.Inc()
		}
	}

	s.log.InfoContext(ctx, "logout", logging.UserID(claims.Subject))
	return &models.MessageResponse{Message: "Logout successful"}, nil
}

// LogoutAll drops every live refresh token for the user.
func (s *AuthService) LogoutAll(ctx context.Context, userID string) (*models.MessageResponse, error) {
	if err := s.sessions.DeleteAllRefreshTokens(ctx, userID); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "logout all devices", logging.UserID(userID))
	return &models.MessageResponse{Message: "Logged out from all devices successfully"}, nil
}

// Authenticate validates a bearer token for the request guard: blacklist
// membership, signature/expiry, then subject existence.
func (s *AuthService) Authenticate(ctx context.Context, raw string) (*models.Identity, error) {
	blacklisted, err := s.sessions.IsBlacklisted(ctx, raw)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return nil, apperr.Unauthorized(apperr.CodeTokenRevoked, "token has been revoked")
	}

	claims, err := s.issuer.VerifyAccess(raw)
	if err != nil {
		return nil, apperr.Unauthorized(apperr.CodeTokenInvalid, "invalid or expired token")
	}

	user, err := s.repo.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperr.Unauthorized(apperr.CodeTokenInvalid, "invalid or expired token")
		}
		return nil, err
	}

	return &models.Identity{UserID: user.ID, Email: user.Email}, nil
}

func (s *AuthService) issueAndStore(ctx context.Context, userID, email string) (*tokens.Pair, error) {
	pair, err := s.issuer.Issue(userID, email)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.StoreRefreshToken(ctx, userID, pair.RefreshToken, s.issuer.RefreshTTL()); err != nil {
		return nil, err
	}
	metrics.TokensIssued.WithLabelValues("access").Inc()
	metrics.TokensIssued.WithLabelValues("refresh").Inc()
	return pair, nil
}
