package app

import (
	"context"
	"sort"
	"sync"

	"blad_backend/internal/common"
	"blad_backend/internal/donation"
	"blad_backend/internal/shared"
	"blad_backend/internal/user"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// memUserRepo is an in-memory user.Repository with a unique email constraint.
type memUserRepo struct {
	mu    sync.Mutex
	users map[bson.ObjectID]user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[bson.ObjectID]user.User)}
}

func (r *memUserRepo) EnsureIndexes(context.Context) error { return nil }

func (r *memUserRepo) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.Email = common.NormalizeEmail(u.Email)
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return common.ErrConflict
		}
	}
	u.ID = bson.NewObjectID()
	r.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) Find(_ context.Context, params user.FilterParams) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]user.User, 0, len(r.users))
	for _, u := range r.users {
		if params.Email != nil && u.Email != common.NormalizeEmail(*params.Email) {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == common.NormalizeEmail(email) {
			found := u
			return &found, nil
		}
	}
	return nil, common.ErrNotFound
}

// get reads a stored user for assertions.
func (r *memUserRepo) get(id bson.ObjectID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &u, nil
}

func (r *memUserRepo) SetRole(_ context.Context, id bson.ObjectID, role shared.Role) (*common.UpdateResult, error) {
	return r.update(id, func(u *user.User) { u.Role = role })
}

func (r *memUserRepo) SetStatus(_ context.Context, id bson.ObjectID, status shared.Status) (*common.UpdateResult, error) {
	return r.update(id, func(u *user.User) { u.Status = status })
}

func (r *memUserRepo) update(id bson.ObjectID, fn func(*user.User)) (*common.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	role, status := u.Role, u.Status
	fn(&u)
	r.users[id] = u
	var modified int64
	if u.Role != role || u.Status != status {
		modified = 1
	}
	return &common.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: modified}, nil
}

// memRequestRepo is an in-memory donation.Repository.
type memRequestRepo struct {
	mu       sync.Mutex
	requests map[bson.ObjectID]donation.Request
}

func newMemRequestRepo() *memRequestRepo {
	return &memRequestRepo{requests: make(map[bson.ObjectID]donation.Request)}
}

func (r *memRequestRepo) EnsureIndexes(context.Context) error { return nil }

func (r *memRequestRepo) Create(_ context.Context, req *donation.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req.ID = bson.NewObjectID()
	r.requests[req.ID] = *req
	return nil
}

func (r *memRequestRepo) Find(_ context.Context, params donation.FilterParams) ([]donation.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]donation.Request, 0, len(r.requests))
	for _, req := range r.requests {
		if params.RequesterEmail != nil && req.RequesterEmail != common.NormalizeEmail(*params.RequesterEmail) {
			continue
		}
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (r *memRequestRepo) FindByID(_ context.Context, id bson.ObjectID) (*donation.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &req, nil
}

func (r *memRequestRepo) Replace(_ context.Context, req *donation.Request) (*common.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[req.ID]; !ok {
		return nil, common.ErrNotFound
	}
	r.requests[req.ID] = *req
	return &common.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (r *memRequestRepo) Delete(_ context.Context, id bson.ObjectID) (*common.DeleteResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[id]; !ok {
		return nil, common.ErrNotFound
	}
	delete(r.requests, id)
	return &common.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

func (r *memRequestRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}
