package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gab-correia/w1-app/internal/core/metrics"
	"github.com/gab-correia/w1-app/internal/domain"
	"github.com/gab-correia/w1-app/pkg/utils"
)

type PasswordHasher interface {
	Hash(ctx context.Context, pw string) (string, error)
	// Verify errors only when the comparison could not run.
	Verify(ctx context.Context, pw, digest string) (bool, error)
}

type TokenIssuer interface {
	Issue(uid string, role domain.Role) (string, error)
}

// AuthService runs the registration and login workflows.
type AuthService struct {
	repo   domain.AccountRepository
	hasher PasswordHasher
	tokens TokenIssuer
	log    *zap.Logger

	// real digest at the configured cost, compared against when the email
	// is unknown
	dummyHash string
}

func NewAuthService(repo domain.AccountRepository, hasher PasswordHasher, tokens TokenIssuer, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &AuthService{repo: repo, hasher: hasher, tokens: tokens, log: log.Named("auth")}
	h, err := hasher.Hash(context.Background(), "w1-app/no-such-user")
	if err != nil {
		s.log.Warn("dummy hash", zap.Error(err))
	}
	s.dummyHash = h
	return s
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	UserType string
}

// Register creates the user row and exactly one role profile in a single
// transaction. Nothing is persisted when any step fails.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	role, err := domain.ParseRole(in.UserType)
	if err != nil {
		metrics.Registrations.WithLabelValues("invalid_role").Inc()
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	email := domain.NormalizeEmail(in.Email)
	if name == "" || in.Password == "" || !validEmail(email) {
		metrics.Registrations.WithLabelValues("malformed").Inc()
		return nil, domain.ErrMalformedRequest
	}

	hash, err := s.hash(ctx, in.Password)
	if err != nil {
		if errors.Is(err, utils.ErrPasswordTooLong) {
			metrics.Registrations.WithLabelValues("malformed").Inc()
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedRequest, err)
		}
		metrics.Registrations.WithLabelValues("hash_error").Inc()
		s.log.Error("hash password", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrHashing, err)
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	err = s.repo.Transaction(ctx, func(tx domain.AccountRepository) error {
		if err := tx.CreateUser(ctx, u); err != nil {
			return err
		}
		switch role {
		case domain.RoleClient:
			return tx.CreateClientProfile(ctx, u.ID)
		case domain.RoleConsultant:
			return tx.CreateConsultantProfile(ctx, u.ID)
		}
		return domain.ErrInvalidRole
	})
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrDuplicateEmail):
		metrics.Registrations.WithLabelValues("duplicate").Inc()
		s.log.Warn("email already registered", zap.String("email", email))
		return nil, domain.ErrDuplicateEmail
	default:
		metrics.Registrations.WithLabelValues("storage_error").Inc()
		s.log.Error("register rolled back", zap.String("email", email), zap.String("role", role.String()), zap.Error(err))
		if errors.Is(err, domain.ErrStorageUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}

	metrics.Registrations.WithLabelValues("success").Inc()
	s.log.Info("user registered", zap.String("user_id", u.ID), zap.String("role", role.String()))
	return u, nil
}

type LoginResult struct {
	Token string
	Role  domain.Role
	User  *domain.User
}

// Login never tells an unknown email apart from a wrong password: both
// return ErrInvalidCredentials after a bcrypt comparison.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = domain.NormalizeEmail(email)

	u, err := s.repo.FindUserByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		if _, err := s.verify(ctx, password, s.dummyHash); err != nil {
			return nil, s.verifyFailed(err)
		}
		metrics.Logins.WithLabelValues("invalid_credentials").Inc()
		s.log.Debug("login: unknown email", zap.String("email", email))
		return nil, domain.ErrInvalidCredentials
	case err != nil:
		metrics.Logins.WithLabelValues("storage_error").Inc()
		s.log.Error("login lookup", zap.Error(err))
		return nil, err
	}

	ok, err := s.verify(ctx, password, u.PasswordHash)
	if err != nil {
		return nil, s.verifyFailed(err)
	}
	if !ok {
		metrics.Logins.WithLabelValues("invalid_credentials").Inc()
		s.log.Debug("login: wrong password", zap.String("user_id", u.ID))
		return nil, domain.ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil || tok == "" {
		metrics.Logins.WithLabelValues("token_error").Inc()
		s.log.Error("issue token", zap.String("user_id", u.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenIssue, err)
	}

	metrics.Logins.WithLabelValues("success").Inc()
	s.log.Info("login succeeded", zap.String("user_id", u.ID))
	return &LoginResult{Token: tok, Role: u.Role, User: u}, nil
}

func (s *AuthService) hash(ctx context.Context, pw string) (string, error) {
	start := time.Now()
	defer func() { metrics.PasswordHashSeconds.Observe(time.Since(start).Seconds()) }()
	return s.hasher.Hash(ctx, pw)
}

func (s *AuthService) verify(ctx context.Context, pw, digest string) (bool, error) {
	start := time.Now()
	defer func() { metrics.PasswordHashSeconds.Observe(time.Since(start).Seconds()) }()
	return s.hasher.Verify(ctx, pw, digest)
}

// verifyFailed wraps a comparison that never ran, e.g. the request deadline
// passed while waiting for a hashing slot.
func (s *AuthService) verifyFailed(err error) error {
	metrics.Logins.WithLabelValues("verify_error").Inc()
	s.log.Warn("password verify did not run", zap.Error(err))
	return fmt.Errorf("%w: %w", domain.ErrHashing, err)
}

func validEmail(email string) bool {
	a, err := mail.ParseAddress(email)
	return err == nil && a.Address == email
}
