package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"contactbook-be/internal/apperrors"
	"contactbook-be/internal/cache"
	"contactbook-be/internal/entities"
	"contactbook-be/internal/models"
	"contactbook-be/internal/repository"
)

// ContactService defines the interface for contact business logic. Every
// operation is scoped to ownerID.
type ContactService interface {
	Create(ctx context.Context, ownerID string, req *models.ContactRequest) (*entities.Contact, error)
	List(ctx context.Context, ownerID string, filter models.ContactFilter) ([]*entities.Contact, error)
	Get(ctx context.Context, id, ownerID string) (*entities.Contact, error)
	Replace(ctx context.Context, id, ownerID string, req *models.ContactRequest) (*entities.Contact, error)
	Update(ctx context.Context, id, ownerID string, req *models.ContactPatchRequest) (*entities.Contact, error)
	Delete(ctx context.Context, id, ownerID string) error
}

type contactService struct {
	repo     repository.ContactRepository
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewContactService creates a new contact service. cacheClient may be nil,
// in which case every read goes to the repository.
func NewContactService(repo repository.ContactRepository, cacheClient cache.Cache, cacheTTL time.Duration, logger *zap.Logger) ContactService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &contactService{
		repo:     repo,
		cache:    cacheClient,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// contactKey includes the owner so a cached entry is never served to
// another user.
func contactKey(ownerID, id string) string {
	return fmt.Sprintf("contact:%s:%s", ownerID, id)
}

func (s *contactService) Create(ctx context.Context, ownerID string, req *models.ContactRequest) (*entities.Contact, error) {
	fields, err := contactFields(req)
	if err != nil {
		return nil, err
	}

	contact, err := s.repo.Create(ctx, ownerID, fields)
	if err != nil {
		return nil, err
	}

	s.cacheContact(ctx, contact)
	return contact, nil
}

func (s *contactService) List(ctx context.Context, ownerID string, filter models.ContactFilter) ([]*entities.Contact, error) {
	return s.repo.List(ctx, ownerID, repository.ContactFilter{
		Name:  strings.TrimSpace(filter.Name),
		Email: strings.TrimSpace(filter.Email),
	})
}

// Get reads through the cache.
func (s *contactService) Get(ctx context.Context, id, ownerID string) (*entities.Contact, error) {
	if s.cache != nil {
		var cached entities.Contact
		err := s.cache.GetJSON(ctx, contactKey(ownerID, id), &cached)
		switch {
		case err == nil && cached.UserID == ownerID:
			return &cached, nil
		case err != nil && !errors.Is(err, cache.ErrCacheMiss):
			s.logger.Warn("contact cache read failed",
				zap.String("contact_id", id),
				zap.Error(err),
			)
		}
	}

	contact, err := s.repo.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	s.cacheContact(ctx, contact)
	return contact, nil
}

// Replace overwrites every field. Absent email or phone become null.
func (s *contactService) Replace(ctx context.Context, id, ownerID string, req *models.ContactRequest) (*entities.Contact, error) {
	fields, err := contactFields(req)
	if err != nil {
		return nil, err
	}

	contact, err := s.repo.Replace(ctx, id, ownerID, fields)
	if err != nil {
		return nil, err
	}

	s.cacheContact(ctx, contact)
	return contact, nil
}

// Update applies only the fields present in req.
func (s *contactService) Update(ctx context.Context, id, ownerID string, req *models.ContactPatchRequest) (*entities.Contact, error) {
	if req.Empty() {
		return nil, apperrors.Validation("at least one of name, email or phone is required")
	}

	var patch repository.ContactPatch
	if req.Name.Set {
		if req.Name.Value == nil || strings.TrimSpace(*req.Name.Value) == "" {
			return nil, apperrors.Validation("name must not be empty")
		}
		name := strings.TrimSpace(*req.Name.Value)
		patch.Name = &name
	}
	if req.Email.Set {
		patch.SetEmail = true
		patch.Email = optional(req.Email.Value)
	}
	if req.Phone.Set {
		patch.SetPhone = true
		patch.Phone = optional(req.Phone.Value)
	}

	contact, err := s.repo.Update(ctx, id, ownerID, patch)
	if err != nil {
		return nil, err
	}

	s.cacheContact(ctx, contact)
	return contact, nil
}

func (s *contactService) Delete(ctx context.Context, id, ownerID string) error {
	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, contactKey(ownerID, id)); err != nil {
			s.logger.Warn("contact cache delete failed",
				zap.String("contact_id", id),
				zap.Error(err),
			)
		}
	}
	return nil
}

func (s *contactService) cacheContact(ctx context.Context, contact *entities.Contact) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, contactKey(contact.UserID, contact.ID), contact, s.cacheTTL); err != nil {
		s.logger.Warn("contact cache write failed",
			zap.String("contact_id", contact.ID),
			zap.Error(err),
		)
	}
}

func contactFields(req *models.ContactRequest) (repository.ContactFields, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return repository.ContactFields{}, apperrors.Validation("name is required")
	}
	return repository.ContactFields{
		Name:  name,
		Email: optional(req.Email),
		Phone: optional(req.Phone),
	}, nil
}

// optional trims v and maps blank values to nil.
func optional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
