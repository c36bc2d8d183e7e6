// FILE: internal/service/auth_service.go
package service

import (
	"context"
	"errors"
	"time"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/pkg/apperror"
	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/internal/repository/contract"
	"notekeeper-be/internal/repository/specification"
	"notekeeper-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	msgEmailExists        = "Email already exists"
	msgInvalidCredentials = "Invalid email or password"
	msgUnauthenticated    = "Authentication required"
	msgPasswordTooLong    = "password must be at most 72 bytes"

	maxPasswordBytes = 72
)

// Session is a verified token and the user it belongs to.
type Session struct {
	User      *entity.User
	TokenId   string
	ExpiresAt time.Time
}

// SessionClaims is the JWT payload issued at register/login.
type SessionClaims struct {
	UserId string `json:"user_id"`
	jwt.RegisteredClaims
}

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Authenticate(ctx context.Context, token string) (*Session, error)
	Logout(ctx context.Context, session *Session) error
	Me(ctx context.Context, userId uuid.UUID) (*dto.MeResponse, error)
	TokenTTL() time.Duration
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	denylist   contract.TokenDenylist
	secret     []byte
	ttl        time.Duration
	logger     logger.ILogger
	now        func() time.Time
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	denylist contract.TokenDenylist,
	secret string,
	ttl time.Duration,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		denylist:   denylist,
		secret:     []byte(secret),
		ttl:        ttl,
		logger:     log,
		now:        time.Now,
	}
}

func (s *authService) TokenTTL() time.Duration {
	return s.ttl
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// bcrypt reads at most 72 bytes; the validator's max counts runes.
	if len(req.Password) > maxPasswordBytes {
		return nil, apperror.Validation(msgPasswordTooLong)
	}

	// 1. Check for existing user
	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, storeError(err, "")
	}
	if existing != nil {
		return nil, apperror.Conflict(msgEmailExists)
	}

	// 2. Hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, apperror.Validation(msgPasswordTooLong)
	}
	if err != nil {
		return nil, apperror.Internal("failed to hash password", err)
	}

	// 3. Save; the unique index still catches a concurrent register
	now := s.now()
	user := &entity.User{
		Id:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, storeError(err, msgEmailExists)
	}

	s.logger.Info("AuthService", "User registered", map[string]interface{}{
		"user_id": user.Id.String(),
	})

	return s.issue(user, "User registered successfully")
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, storeError(err, "")
	}
	if user == nil {
		return nil, apperror.Unauthenticated(msgInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.Unauthenticated(msgInvalidCredentials)
	}

	return s.issue(user, "Login successful")
}

func (s *authService) issue(user *entity.User, message string) (*dto.AuthResponse, error) {
	now := s.now()
	claims := SessionClaims{
		UserId: user.Id.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.secret)
	if err != nil {
		return nil, apperror.Internal("failed to sign token", err)
	}

	return &dto.AuthResponse{
		Message:   message,
		Token:     signedToken,
		ExpiresIn: int64(s.ttl / time.Second),
		User:      toUserDTO(user),
	}, nil
}

// Authenticate verifies a raw token. Every failure is Unauthenticated; callers get no detail.
func (s *authService) Authenticate(ctx context.Context, tokenString string) (*Session, error) {
	if tokenString == "" {
		return nil, apperror.Unauthenticated(msgUnauthenticated)
	}

	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, apperror.Unauthenticated(msgUnauthenticated)
	}

	userId, err := uuid.Parse(claims.UserId)
	if err != nil {
		return nil, apperror.Unauthenticated(msgUnauthenticated)
	}

	if claims.ID != "" {
		revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, apperror.Internal("failed to check token denylist", err)
		}
		if revoked {
			return nil, apperror.Unauthenticated(msgUnauthenticated)
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, storeError(err, "")
	}
	if user == nil {
		return nil, apperror.Unauthenticated(msgUnauthenticated)
	}

	return &Session{
		User:      user,
		TokenId:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *authService) Logout(ctx context.Context, session *Session) error {
	if session == nil {
		return apperror.Unauthenticated(msgUnauthenticated)
	}
	if session.TokenId == "" {
		return nil
	}
	if err := s.denylist.Revoke(ctx, session.TokenId, session.ExpiresAt); err != nil {
		return apperror.Internal("failed to revoke token", err)
	}

	s.logger.Info("AuthService", "User logged out", map[string]interface{}{
		"user_id": session.User.Id.String(),
	})
	return nil
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.MeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, storeError(err, "")
	}
	if user == nil {
		return nil, apperror.Unauthenticated(msgUnauthenticated)
	}
	return &dto.MeResponse{User: toUserDTO(user)}, nil
}

func toUserDTO(user *entity.User) dto.UserDTO {
	return dto.UserDTO{
		Id:    user.Id,
		Name:  user.Name,
		Email: user.Email,
	}
}

