package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tejasoft/business-suite/internal/core/domain"
	"github.com/tejasoft/business-suite/internal/core/ports"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// AuthService implements registration, login, and session token handling.
type AuthService struct {
	users     ports.UserRepository
	recorder  ports.ActivityRecorder
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

// NewAuthService builds an AuthService. The signing secret is a hard
// requirement; running without one would silently issue forgeable tokens.
func NewAuthService(users ports.UserRepository, recorder ports.ActivityRecorder, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if jwtSecret == "" {
		panic("auth: JWT secret is not configured")
	}
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{users: users, recorder: recorder, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// Register creates a user account plus the role-matching profile record.
// Only non-admin roles can be registered.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Email == "" || len(input.Password) < 6 {
		return nil, domain.ErrValidation
	}
	if input.Role != domain.RoleEmployee && input.Role != domain.RoleClient {
		return nil, domain.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         input.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// The profile name defaults to the email; users rename via /api/profile.
	switch input.Role {
	case domain.RoleEmployee:
		user.Employee = &domain.Employee{Name: input.Email, JoinedDate: now}
	case domain.RoleClient:
		user.Client = &domain.Client{Name: input.Email}
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Login verifies the password and issues a signed session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Principal, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrValidation
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	principal := &domain.Principal{ID: user.ID, Role: user.Role, Email: user.Email}
	token, err := s.issueToken(principal)
	if err != nil {
		return "", nil, err
	}

	s.recorder.Record(ports.ActivityInput{
		ActorID:   user.ID,
		Action:    domain.ActivityLogin,
		Timestamp: time.Now().UTC(),
	})

	return token, principal, nil
}

func (s *AuthService) issueToken(p *domain.Principal) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   p.ID,
		"role":  p.Role,
		"email": p.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// VerifyToken checks signature and expiry and resolves the principal. Every
// failure mode collapses into domain.ErrUnauthenticated so callers treat bad
// tokens as "not logged in" rather than as a fault.
func (s *AuthService) VerifyToken(token string) (*domain.Principal, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrUnauthenticated
	}

	id, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	email, _ := claims["email"].(string)
	if id == "" || !domain.ValidRole(role) {
		return nil, domain.ErrUnauthenticated
	}

	return &domain.Principal{ID: id, Role: role, Email: email}, nil
}

// TokenTTL exposes the configured token lifetime so the transport layer can
// align the session cookie max-age with the token expiry.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}
