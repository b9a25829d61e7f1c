package rbac

import (
	"fmt"
	"sync"

	"go-worktrack/internal/domain"
	"go-worktrack/internal/shared/contextutil"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
	Permissions(role string) ([][]string, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewService seeds the enforcer with the built-in role policies.
func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	enforcer.ClearPolicy()
	if _, err := enforcer.AddPolicies(defaultPolicies()); err != nil {
		return nil, fmt.Errorf("load role policies: %w", err)
	}
	if _, err := enforcer.AddGroupingPolicy(contextutil.RoleAdmin, contextutil.RoleEmployee); err != nil {
		return nil, fmt.Errorf("load role inheritance: %w", err)
	}

	return &service{enforcer: enforcer, logger: l}, nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(req.Role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", req.Role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", req.Role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) Permissions(role string) ([][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.enforcer.GetImplicitPermissionsForUser(role)
}
