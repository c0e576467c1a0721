package server

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"contactbook-be/internal/apperrors"
	"contactbook-be/internal/entities"
	"contactbook-be/internal/repository"
)

// memUserRepo is an in-memory repository.UserRepository.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entities.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entities.User)}
}

func (r *memUserRepo) Create(_ context.Context, name, email, passwordHash string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return nil, apperrors.ErrEmailTaken
		}
	}
	now := time.Now().UTC()
	u := &entities.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.users[u.ID] = u
	copied := *u
	return &copied, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// memContactRepo is an in-memory repository.ContactRepository with the same
// owner scoping as the SQL implementation.
type memContactRepo struct {
	mu       sync.Mutex
	contacts map[string]*entities.Contact
	clock    time.Time
}

func newMemContactRepo() *memContactRepo {
	return &memContactRepo{
		contacts: make(map[string]*entities.Contact),
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns strictly increasing timestamps so ordering is deterministic.
func (r *memContactRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *memContactRepo) owned(id, ownerID string) (*entities.Contact, error) {
	c, ok := r.contacts[id]
	if !ok || c.UserID != ownerID {
		return nil, apperrors.ErrNotFound
	}
	return c, nil
}

func (r *memContactRepo) Create(_ context.Context, ownerID string, fields repository.ContactFields) (*entities.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.tick()
	c := &entities.Contact{
		ID:        uuid.NewString(),
		Name:      fields.Name,
		Email:     fields.Email,
		Phone:     fields.Phone,
		UserID:    ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.contacts[c.ID] = c
	copied := *c
	return &copied, nil
}

func (r *memContactRepo) List(_ context.Context, ownerID string, filter repository.ContactFilter) ([]*entities.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []*entities.Contact{}
	for _, c := range r.contacts {
		if c.UserID != ownerID {
			continue
		}
		if filter.Name != "" && !containsFold(c.Name, filter.Name) {
			continue
		}
		if filter.Email != "" && (c.Email == nil || !containsFold(*c.Email, filter.Email)) {
			continue
		}
		copied := *c
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memContactRepo) FindByID(_ context.Context, id, ownerID string) (*entities.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.owned(id, ownerID)
	if err != nil {
		return nil, err
	}
	copied := *c
	return &copied, nil
}

func (r *memContactRepo) Replace(_ context.Context, id, ownerID string, fields repository.ContactFields) (*entities.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.owned(id, ownerID)
	if err != nil {
		return nil, err
	}
	c.Name, c.Email, c.Phone = fields.Name, fields.Email, fields.Phone
	c.UpdatedAt = r.tick()
	copied := *c
	return &copied, nil
}

func (r *memContactRepo) Update(_ context.Context, id, ownerID string, patch repository.ContactPatch) (*entities.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.owned(id, ownerID)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.SetEmail {
		c.Email = patch.Email
	}
	if patch.SetPhone {
		c.Phone = patch.Phone
	}
	c.UpdatedAt = r.tick()
	copied := *c
	return &copied, nil
}

func (r *memContactRepo) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.owned(id, ownerID); err != nil {
		return err
	}
	delete(r.contacts, id)
	return nil
}

func (r *memContactRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.contacts)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// stubPinger reports a fixed health state.
type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

var errDown = errors.New("database down")
