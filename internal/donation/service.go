// File: internal/donation/service.go
package donation

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

// Service defines donation request business logic.
type Service interface {
	Create(ctx context.Context, in CreateRequest) (*common.InsertResult, error)
	List(ctx context.Context) ([]Request, error)
	ListByRequester(ctx context.Context, email string) ([]Request, error)
	Get(ctx context.Context, id string) (*Request, error)
	Update(ctx context.Context, callerEmail, id string, in UpdateRequest) (*common.UpdateResult, error)
	Delete(ctx context.Context, callerEmail, id string) (*common.DeleteResult, error)
}

// ServiceImplementation implements Service.
type ServiceImplementation struct {
	repo     Repository
	accounts shared.AccountProvider
	logger   *zap.Logger
	now      func() time.Time
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new donation request service. accounts backs the
// owner-or-admin check on mutations.
func NewService(repo Repository, accounts shared.AccountProvider, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:     repo,
		accounts: accounts,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *ServiceImplementation) Create(ctx context.Context, in CreateRequest) (*common.InsertResult, error) {
	req := newRequest(in, s.now())
	if err := s.repo.Create(ctx, req); err != nil {
		s.logger.Error("Failed to create donation request", zap.Error(err), zap.String("reqEmail", req.RequesterEmail))
		return nil, err
	}
	s.logger.Info("Donation request created", zap.String("requestID", req.ID.Hex()), zap.String("reqEmail", req.RequesterEmail))
	return &common.InsertResult{Acknowledged: true, InsertedID: req.ID.Hex()}, nil
}

func (s *ServiceImplementation) List(ctx context.Context) ([]Request, error) {
	return s.repo.Find(ctx, FilterParams{})
}

func (s *ServiceImplementation) ListByRequester(ctx context.Context, email string) ([]Request, error) {
	return s.repo.Find(ctx, FilterParams{RequesterEmail: &email})
}

func (s *ServiceImplementation) Get(ctx context.Context, id string) (*Request, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, oid)
}

// Update replaces the editable fields of the request. Only the requester or
// an active admin may do so.
func (s *ServiceImplementation) Update(ctx context.Context, callerEmail, id string, in UpdateRequest) (*common.UpdateResult, error) {
	existing, err := s.loadForMutation(ctx, callerEmail, id)
	if err != nil {
		return nil, err
	}
	result, err := s.repo.Replace(ctx, applyUpdate(existing, in, s.now()))
	if err != nil {
		return nil, err
	}
	s.logger.Info("Donation request updated", zap.String("requestID", id), zap.String("by", callerEmail))
	return result, nil
}

// Delete removes the request. Only the requester or an active admin may do so.
func (s *ServiceImplementation) Delete(ctx context.Context, callerEmail, id string) (*common.DeleteResult, error) {
	existing, err := s.loadForMutation(ctx, callerEmail, id)
	if err != nil {
		return nil, err
	}
	result, err := s.repo.Delete(ctx, existing.ID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Donation request deleted", zap.String("requestID", id), zap.String("by", callerEmail))
	return result, nil
}

func (s *ServiceImplementation) loadForMutation(ctx context.Context, callerEmail, id string) (*Request, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, callerEmail, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// authorize performs a single account lookup. A requester without a stored
// account may still manage their own requests; a blocked account may not.
func (s *ServiceImplementation) authorize(ctx context.Context, callerEmail string, req *Request) error {
	caller := common.NormalizeEmail(callerEmail)
	if caller == "" {
		return common.ErrUnauthorized
	}

	account, err := s.accounts.GetAccountByEmail(ctx, caller)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("failed to load caller account: %w", err)
	}
	if account != nil && !account.Active() {
		s.logger.Info("Blocked user refused", zap.String("email", caller))
		return common.ErrForbidden.WithDetails("Account is blocked.")
	}

	if common.NormalizeEmail(req.RequesterEmail) == caller {
		return nil
	}
	if account != nil && account.Role == shared.RoleAdmin {
		return nil
	}
	s.logger.Debug("Donation request mutation refused",
		zap.String("email", caller),
		zap.String("requestID", req.ID.Hex()),
	)
	return common.ErrForbidden
}

func parseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, common.ErrBadRequest.WithDetails("Invalid ID format.")
	}
	return oid, nil
}
