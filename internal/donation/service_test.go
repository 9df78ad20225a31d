package donation

import (
	"context"
	"errors"
	"testing"

	"blad_backend/internal/common"
	"blad_backend/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockRequestRepository) Create(ctx context.Context, req *Request) error {
	args := m.Called(ctx, req)
	if args.Error(0) == nil {
		req.ID = bson.NewObjectID()
	}
	return args.Error(0)
}

func (m *MockRequestRepository) Find(ctx context.Context, params FilterParams) ([]Request, error) {
	args := m.Called(ctx, params)
	reqs, _ := args.Get(0).([]Request)
	return reqs, args.Error(1)
}

func (m *MockRequestRepository) FindByID(ctx context.Context, id bson.ObjectID) (*Request, error) {
	args := m.Called(ctx, id)
	req, _ := args.Get(0).(*Request)
	return req, args.Error(1)
}

func (m *MockRequestRepository) Replace(ctx context.Context, req *Request) (*common.UpdateResult, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*common.UpdateResult)
	return r, args.Error(1)
}

func (m *MockRequestRepository) Delete(ctx context.Context, id bson.ObjectID) (*common.DeleteResult, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*common.DeleteResult)
	return r, args.Error(1)
}

type MockAccountProvider struct {
	mock.Mock
}

func (m *MockAccountProvider) GetAccountByEmail(ctx context.Context, email string) (*shared.Account, error) {
	args := m.Called(ctx, email)
	acc, _ := args.Get(0).(*shared.Account)
	return acc, args.Error(1)
}

func newTestService() (*ServiceImplementation, *MockRequestRepository, *MockAccountProvider) {
	repo := &MockRequestRepository{}
	accounts := &MockAccountProvider{}
	return NewService(repo, accounts, zap.NewNop()), repo, accounts
}

func validUpdate() UpdateRequest {
	return UpdateRequest{
		RequesterName: "Owner",
		RecipientName: "Patient",
		District:      "Dhaka",
		Upazila:       "Savar",
		Hospital:      "Enam Medical",
		Address:       "Road 1",
		DonationDate:  "2026-10-20",
		DonationTime:  "10:00",
		Status:        StatusInProgress,
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()
	repo.On("Create", ctx, mock.MatchedBy(func(r *Request) bool {
		return r.Status == StatusPending && r.RequesterEmail == "owner@example.com"
	})).Return(nil)

	res, err := svc.Create(ctx, CreateRequest{RequesterName: "Owner", RequesterEmail: " Owner@Example.com "})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	assert.Len(t, res.InsertedID, 24)
	repo.AssertExpectations(t)
}

func TestService_ListByRequester(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()
	email := "owner@example.com"
	repo.On("Find", ctx, FilterParams{RequesterEmail: &email}).Return([]Request{{RequesterEmail: email}}, nil)

	reqs, err := svc.ListByRequester(ctx, email)
	require.NoError(t, err)
	assert.Len(t, reqs, 1)
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()
	id := bson.NewObjectID()
	repo.On("FindByID", ctx, id).Return(nil, common.ErrNotFound)

	_, err := svc.Get(ctx, "bad")
	assert.ErrorIs(t, err, common.ErrBadRequest)

	_, err = svc.Get(ctx, id.Hex())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestService_Update_Authorization(t *testing.T) {
	ctx := context.Background()
	id := bson.NewObjectID()
	stored := &Request{ID: id, RequesterEmail: "owner@example.com", Status: StatusPending}

	tests := []struct {
		name    string
		caller  string
		account *shared.Account
		lookup  error
		wantErr error
	}{
		{"owner with account", "owner@example.com", &shared.Account{Email: "owner@example.com", Role: shared.RoleDonor, Status: shared.StatusActive}, nil, nil},
		{"owner without account", "OWNER@example.com", nil, common.ErrNotFound, nil},
		{"active admin", "admin@example.com", &shared.Account{Email: "admin@example.com", Role: shared.RoleAdmin, Status: shared.StatusActive}, nil, nil},
		{"blocked admin", "admin@example.com", &shared.Account{Email: "admin@example.com", Role: shared.RoleAdmin, Status: shared.StatusBlocked}, nil, common.ErrForbidden},
		{"blocked owner", "owner@example.com", &shared.Account{Email: "owner@example.com", Role: shared.RoleDonor, Status: shared.StatusBlocked}, nil, common.ErrForbidden},
		{"volunteer stranger", "vol@example.com", &shared.Account{Email: "vol@example.com", Role: shared.RoleVolunteer, Status: shared.StatusActive}, nil, common.ErrForbidden},
		{"unknown stranger", "who@example.com", nil, common.ErrNotFound, common.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, accounts := newTestService()
			repo.On("FindByID", ctx, id).Return(stored, nil)
			accounts.On("GetAccountByEmail", ctx, common.NormalizeEmail(tt.caller)).Return(tt.account, tt.lookup).Once()
			repo.On("Replace", ctx, mock.Anything).
				Return(&common.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil)

			_, err := svc.Update(ctx, tt.caller, id.Hex(), validUpdate())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				repo.AssertCalled(t, "Replace", ctx, mock.Anything)
			}
			accounts.AssertNumberOfCalls(t, "GetAccountByEmail", 1)
		})
	}
}

func TestService_Update_KeepsRequester(t *testing.T) {
	ctx := context.Background()
	svc, repo, accounts := newTestService()
	id := bson.NewObjectID()
	stored := &Request{ID: id, RequesterEmail: "owner@example.com", Status: StatusPending}
	repo.On("FindByID", ctx, id).Return(stored, nil)
	accounts.On("GetAccountByEmail", ctx, "admin@example.com").
		Return(&shared.Account{Role: shared.RoleAdmin, Status: shared.StatusActive}, nil)
	repo.On("Replace", ctx, mock.MatchedBy(func(r *Request) bool {
		return r.ID == id && r.RequesterEmail == "owner@example.com" && r.Status == StatusInProgress
	})).Return(&common.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil)

	_, err := svc.Update(ctx, "admin@example.com", id.Hex(), validUpdate())
	require.NoError(t, err)
	repo.AssertExpectations(t)
	assert.Equal(t, StatusPending, stored.Status)
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	id := bson.NewObjectID()

	t.Run("owner deletes", func(t *testing.T) {
		svc, repo, accounts := newTestService()
		repo.On("FindByID", ctx, id).Return(&Request{ID: id, RequesterEmail: "owner@example.com"}, nil)
		accounts.On("GetAccountByEmail", ctx, "owner@example.com").Return(nil, common.ErrNotFound)
		repo.On("Delete", ctx, id).Return(&common.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil)

		res, err := svc.Delete(ctx, "owner@example.com", id.Hex())
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.DeletedCount)
	})

	t.Run("missing request", func(t *testing.T) {
		svc, repo, accounts := newTestService()
		repo.On("FindByID", ctx, id).Return(nil, common.ErrNotFound)

		_, err := svc.Delete(ctx, "owner@example.com", id.Hex())
		assert.ErrorIs(t, err, common.ErrNotFound)
		accounts.AssertNotCalled(t, "GetAccountByEmail", mock.Anything, mock.Anything)
	})

	t.Run("account store failure", func(t *testing.T) {
		svc, repo, accounts := newTestService()
		repo.On("FindByID", ctx, id).Return(&Request{ID: id, RequesterEmail: "owner@example.com"}, nil)
		accounts.On("GetAccountByEmail", ctx, "owner@example.com").Return(nil, errors.New("timeout"))

		_, err := svc.Delete(ctx, "owner@example.com", id.Hex())
		require.Error(t, err)
		_, isAPI := common.IsAPIError(err)
		assert.False(t, isAPI)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("no caller", func(t *testing.T) {
		svc, repo, _ := newTestService()
		repo.On("FindByID", ctx, id).Return(&Request{ID: id, RequesterEmail: "owner@example.com"}, nil)

		_, err := svc.Delete(ctx, "", id.Hex())
		assert.ErrorIs(t, err, common.ErrUnauthorized)
	})
}
