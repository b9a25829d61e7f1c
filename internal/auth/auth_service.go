package auth

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	autherrors "go-worktrack/internal/auth/errors"
	"go-worktrack/internal/shared/contextutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResult, error)
	Logout(ctx context.Context, token string) error
	Resolve(ctx context.Context, token string) (contextutil.Actor, error)
	Me(ctx context.Context, actor contextutil.Actor) (AuthResponse, error)
	ChangePassword(ctx context.Context, actor contextutil.Actor, req ChangePasswordRequest) error
}

type Config struct {
	Secret     []byte
	SessionTTL time.Duration
}

type service struct {
	repo     Repository
	sessions SessionStore
	cfg      Config
	logger   *zap.Logger
}

func NewService(repo Repository, sessions SessionStore, cfg Config, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 12 * time.Hour
	}
	return &service{repo: repo, sessions: sessions, cfg: cfg, logger: l}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	identifier := strings.TrimSpace(req.Identifier)
	s.logger.Debug("login requested", zap.String("identifier", identifier))

	cred, err := s.repo.FindActiveByLogin(ctx, identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("login unknown or inactive account", zap.String("identifier", identifier))
			return LoginResult{}, autherrors.ErrInvalidCredentials
		}
		s.logger.Error("login lookup failed", zap.Error(err))
		return LoginResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("login wrong password", zap.Int64("employee_id", cred.ID))
		return LoginResult{}, autherrors.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	session := Session{
		ID:         uuid.NewString(),
		EmployeeID: cred.ID,
		FirstName:  cred.FirstName,
		LastName:   cred.LastName,
		Role:       cred.EmpType,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.cfg.SessionTTL),
	}
	if err := s.sessions.Save(ctx, session, s.cfg.SessionTTL); err != nil {
		s.logger.Error("login save session failed", zap.Error(err))
		return LoginResult{}, err
	}

	token, err := s.signToken(session)
	if err != nil {
		s.logger.Error("login sign token failed", zap.Error(err))
		return LoginResult{}, err
	}

	s.logger.Info("login success", zap.Int64("employee_id", cred.ID), zap.String("role", cred.EmpType))
	return LoginResult{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      toResponse(cred),
	}, nil
}

func (s *service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.parseToken(token)
	if err != nil {
		// nothing server-side to clean up for a forged or expired cookie
		return nil
	}
	if err := s.sessions.Delete(ctx, claims.ID); err != nil {
		s.logger.Error("logout delete session failed", zap.String("session_id", claims.ID), zap.Error(err))
		return err
	}
	s.logger.Info("logout success", zap.String("employee_id", claims.Subject))
	return nil
}

func (s *service) Resolve(ctx context.Context, token string) (contextutil.Actor, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return contextutil.Actor{}, autherrors.ErrSessionExpired
		}
		return contextutil.Actor{}, autherrors.ErrInvalidToken
	}

	session, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return contextutil.Actor{}, autherrors.ErrSessionExpired
		}
		s.logger.Error("resolve session failed", zap.Error(err))
		return contextutil.Actor{}, err
	}
	if strconv.FormatInt(session.EmployeeID, 10) != claims.Subject {
		s.logger.Warn("session subject mismatch", zap.String("session_id", claims.ID))
		return contextutil.Actor{}, autherrors.ErrInvalidToken
	}

	return contextutil.Actor{
		EmployeeID: session.EmployeeID,
		FirstName:  session.FirstName,
		LastName:   session.LastName,
		Role:       session.Role,
	}, nil
}

func (s *service) Me(ctx context.Context, actor contextutil.Actor) (AuthResponse, error) {
	cred, err := s.repo.FindByID(ctx, actor.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, autherrors.ErrUserNotFound
		}
		return AuthResponse{}, err
	}
	return toResponse(cred), nil
}

func (s *service) ChangePassword(ctx context.Context, actor contextutil.Actor, req ChangePasswordRequest) error {
	s.logger.Debug("change password requested", zap.Int64("employee_id", actor.EmployeeID))

	cred, err := s.repo.FindByID(ctx, actor.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return autherrors.ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.OldPassword)); err != nil {
		s.logger.Warn("change password wrong current password", zap.Int64("employee_id", actor.EmployeeID))
		return autherrors.ErrWrongPassword
	}
	if req.OldPassword == req.NewPassword {
		return autherrors.ErrSamePassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, actor.EmployeeID, string(hash)); err != nil {
		s.logger.Error("change password persist failed", zap.Error(err))
		return err
	}

	s.logger.Info("change password success", zap.Int64("employee_id", actor.EmployeeID))
	return nil
}

func (s *service) signToken(session Session) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        session.ID,
		Subject:   strconv.FormatInt(session.EmployeeID, 10),
		IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
}

func (s *service) parseToken(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.cfg.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.ID == "" {
		return nil, autherrors.ErrInvalidToken
	}
	return claims, nil
}

func toResponse(c *Credential) AuthResponse {
	return AuthResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.PhoneNo,
		Role:      c.EmpType,
	}
}
