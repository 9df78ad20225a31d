package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blad_backend/internal/common"
	"blad_backend/internal/shared"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

// Service defines user-related business logic.
type Service interface {
	Register(ctx context.Context, req CreateUserRequest) (*common.InsertResult, error)
	ListUsers(ctx context.Context, params FilterParams) ([]User, error)
	HasRole(ctx context.Context, email string, role shared.Role) (bool, error)
	PromoteTo(ctx context.Context, id string, role shared.Role) (*common.UpdateResult, error)
	SetStatus(ctx context.Context, id string, status shared.Status) (*common.UpdateResult, error)
	GetAccountByEmail(ctx context.Context, email string) (*shared.Account, error)
}

// ServiceImplementation implements Service and shared.AccountProvider.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

var _ Service = (*ServiceImplementation)(nil)
var _ shared.AccountProvider = (*ServiceImplementation)(nil)

// NewService creates a new user service.
func NewService(repo Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Register stores a new donor account. Emails are unique.
func (s *ServiceImplementation) Register(ctx context.Context, req CreateUserRequest) (*common.InsertResult, error) {
	_, err := s.repo.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, common.ErrConflict.WithDetails("User with this email already exists.")
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user by email: %w", err)
	}

	u := NewUserFromRequest(req, s.now())
	// the unique index still guards the race between the check and the insert
	if err := s.repo.Create(ctx, u); err != nil {
		if apiErr, ok := common.IsAPIError(err); ok {
			return nil, apiErr
		}
		s.logger.Error("Failed to create user in repository", zap.Error(err), zap.String("email", u.Email))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", zap.String("userID", u.ID.Hex()))
	return &common.InsertResult{Acknowledged: true, InsertedID: u.ID.Hex()}, nil
}

func (s *ServiceImplementation) ListUsers(ctx context.Context, params FilterParams) ([]User, error) {
	return s.repo.Find(ctx, params)
}

// HasRole answers a self role lookup. An unknown email has no role, and a
// blocked account holds none, matching what the role gate admits.
func (s *ServiceImplementation) HasRole(ctx context.Context, email string, role shared.Role) (bool, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	account := ToAccount(u)
	return account.Active() && account.Role == role, nil
}

// PromoteTo sets the stored role of the user with the given id.
func (s *ServiceImplementation) PromoteTo(ctx context.Context, id string, role shared.Role) (*common.UpdateResult, error) {
	if !role.Valid() {
		return nil, common.ErrBadRequest.WithDetails("Unknown role.")
	}
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	result, err := s.repo.SetRole(ctx, oid, role)
	if err != nil {
		return nil, err
	}
	s.logger.Info("User role changed", zap.String("userID", id), zap.String("role", string(role)))
	return result, nil
}

// SetStatus blocks or re-activates the user with the given id.
func (s *ServiceImplementation) SetStatus(ctx context.Context, id string, status shared.Status) (*common.UpdateResult, error) {
	if !status.Valid() {
		return nil, common.ErrBadRequest.WithDetails("Unknown status.")
	}
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	result, err := s.repo.SetStatus(ctx, oid, status)
	if err != nil {
		return nil, err
	}
	s.logger.Info("User status changed", zap.String("userID", id), zap.String("status", string(status)))
	return result, nil
}

// GetAccountByEmail is the single point read behind the role gate.
func (s *ServiceImplementation) GetAccountByEmail(ctx context.Context, email string) (*shared.Account, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return ToAccount(u), nil
}

// ParseID converts a hex path parameter to an ObjectID.
func ParseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, common.ErrBadRequest.WithDetails("Invalid ID format.")
	}
	return oid, nil
}
