package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"library-service/internals/apperrors"
	"library-service/internals/models"
	"library-service/internals/repository"
	"library-service/internals/validation"
)

const sessionKeyPrefix = "session:"

// Clock supplies the current time so token expiry can be pinned in tests.
type Clock func() time.Time

// AuthService owns account registration and bearer-token issuance. Tokens are
// HS256 JWTs carrying the account email (sub), a session id (jti) and an
// expiry; when a Redis client is wired in, the session id is also recorded
// there so logout can revoke a live token before it expires.
type AuthService struct {
	users    repository.UserRepository
	sessions *redis.Client
	secret   []byte
	expiry   time.Duration
	now      Clock
	validate *validation.Validator
	log      *logrus.Logger
}

type AuthOption func(*AuthService)

// WithClock overrides the wall clock, for tests.
func WithClock(now Clock) AuthOption {
	return func(s *AuthService) { s.now = now }
}

// WithSessionStore enables Redis-backed session tracking. A nil client leaves
// the service in stateless-token mode.
func WithSessionStore(client *redis.Client) AuthOption {
	return func(s *AuthService) { s.sessions = client }
}

func NewAuthService(users repository.UserRepository, secret string, expiry time.Duration, log *logrus.Logger, opts ...AuthOption) *AuthService {
	s := &AuthService{
		users:    users,
		secret:   []byte(secret),
		expiry:   expiry,
		now:      time.Now,
		validate: validation.New(),
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,userpassword"`
}

// Register creates an account with a bcrypt hash of the password. The
// password policy is checked here, before hashing, so no plaintext that
// violates it ever reaches the store.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.UserModel, error) {
	if err := s.validate.Struct(credentials{Email: email, Password: password}); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}
	user := &models.UserModel{
		Email:          email,
		HashedPassword: string(hash),
		IsActive:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.log.WithField("email", email).Info("registered user")
	return user, nil
}

// Login verifies the credentials and issues a bearer token. Every mismatch
// returns the same generic failure so callers cannot probe which emails exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return "", apperrors.AuthFailure("Incorrect email or password")
		}
		return "", err
	}
	if !user.IsActive {
		return "", apperrors.AuthFailure("Incorrect email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return "", apperrors.AuthFailure("Incorrect email or password")
	}

	sessionID := uuid.New().String()
	issuedAt := s.now()
	claims := jwt.MapClaims{
		"sub": user.Email,
		"jti": sessionID,
		"iat": issuedAt.Unix(),
		"exp": issuedAt.Add(s.expiry).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", apperrors.Internal("failed to sign token", err)
	}

	if s.sessions != nil {
		err := s.sessions.Set(ctx, sessionKeyPrefix+sessionID, user.Email, s.expiry).Err()
		if err != nil {
			return "", apperrors.Internal("failed to record session", err)
		}
	}
	s.log.WithField("email", user.Email).Debug("issued access token")
	return token, nil
}

// Verify decodes and checks the token, then re-resolves the account by the
// embedded email so a deactivated account invalidates its tokens immediately,
// ahead of expiry.
func (s *AuthService) Verify(ctx context.Context, tokenString string) (*models.UserModel, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil, err
	}
	email, _ := claims["sub"].(string)
	sessionID, _ := claims["jti"].(string)
	if email == "" || sessionID == "" {
		return nil, apperrors.AuthFailure("Could not validate credentials")
	}

	if s.sessions != nil {
		stored, err := s.sessions.Get(ctx, sessionKeyPrefix+sessionID).Result()
		if err != nil || stored != email {
			return nil, apperrors.AuthFailure("Could not validate credentials")
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil || !user.IsActive {
		return nil, apperrors.AuthFailure("Could not validate credentials")
	}
	return user, nil
}

// Logout revokes the session behind the token. Without a session store there
// is nothing to revoke server-side; the call still validates the token so the
// client gets a clear answer.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return err
	}
	if s.sessions == nil {
		return nil
	}
	sessionID, _ := claims["jti"].(string)
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return apperrors.Internal("failed to revoke session", err)
	}
	return nil
}

func (s *AuthService) parseToken(tokenString string) (jwt.MapClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
		jwt.WithExpirationRequired(),
	)
	token, err := parser.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.AuthFailure("Token expired")
		}
		return nil, apperrors.AuthFailure("Could not validate credentials")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperrors.AuthFailure("Could not validate credentials")
	}
	return claims, nil
}
