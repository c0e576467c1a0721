package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"contactbook-be/internal/apperrors"
	"contactbook-be/internal/cache"
	"contactbook-be/internal/entities"
	"contactbook-be/internal/models"
	"contactbook-be/internal/repository"
	"contactbook-be/internal/repository/mocks"
)

const (
	testOwnerID   = "0b8f6f3e-8c1d-4f2a-9a57-2f1e0d3c4b5a"
	testContactID = "9d2c1b0a-1e2f-4a3b-8c4d-5e6f7a8b9c0d"
)

func strPtr(s string) *string { return &s }

func sampleContact() *entities.Contact {
	return &entities.Contact{
		ID:        testContactID,
		Name:      "Ana",
		Email:     strPtr("ana@example.com"),
		Phone:     strPtr("555"),
		UserID:    testOwnerID,
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func newUncachedContactService(t *testing.T) (ContactService, *mocks.MockContactRepository) {
	t.Helper()
	repo := mocks.NewMockContactRepository(gomock.NewController(t))
	return NewContactService(repo, nil, time.Minute, nil), repo
}

func newCachedContactService(t *testing.T) (ContactService, *mocks.MockContactRepository, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c, err := cache.NewRedisCache(mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	repo := mocks.NewMockContactRepository(gomock.NewController(t))
	return NewContactService(repo, c, time.Minute, zap.NewNop()), repo, mr
}

func TestContactService_Create(t *testing.T) {
	svc, repo := newUncachedContactService(t)
	want := sampleContact()

	repo.EXPECT().
		Create(gomock.Any(), testOwnerID, repository.ContactFields{Name: "Ana", Email: strPtr("ana@example.com")}).
		Return(want, nil)

	got, err := svc.Create(context.Background(), testOwnerID, &models.ContactRequest{
		Name:  "  Ana ",
		Email: strPtr("ana@example.com"),
		Phone: strPtr("  "),
	})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestContactService_CreateRequiresName(t *testing.T) {
	svc, _ := newUncachedContactService(t)

	for _, name := range []string{"", "   "} {
		_, err := svc.Create(context.Background(), testOwnerID, &models.ContactRequest{Name: name})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	}
}

func TestContactService_ListTrimsFilter(t *testing.T) {
	svc, repo := newUncachedContactService(t)

	repo.EXPECT().
		List(gomock.Any(), testOwnerID, repository.ContactFilter{Name: "an", Email: ""}).
		Return([]*entities.Contact{}, nil)

	got, err := svc.List(context.Background(), testOwnerID, models.ContactFilter{Name: " an ", Email: " "})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestContactService_ReplaceClearsAbsentFields(t *testing.T) {
	svc, repo := newUncachedContactService(t)
	want := sampleContact()
	want.Email, want.Phone = nil, nil

	repo.EXPECT().
		Replace(gomock.Any(), testContactID, testOwnerID, repository.ContactFields{Name: "Ana"}).
		Return(want, nil)

	got, err := svc.Replace(context.Background(), testContactID, testOwnerID, &models.ContactRequest{Name: "Ana"})
	require.NoError(t, err)
	assert.Nil(t, got.Phone)
}

func TestContactService_ReplaceNotFound(t *testing.T) {
	svc, repo := newUncachedContactService(t)

	repo.EXPECT().Replace(gomock.Any(), testContactID, testOwnerID, gomock.Any()).Return(nil, apperrors.ErrNotFound)

	_, err := svc.Replace(context.Background(), testContactID, testOwnerID, &models.ContactRequest{Name: "Ana"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestContactService_UpdateBuildsPatch(t *testing.T) {
	svc, repo := newUncachedContactService(t)

	repo.EXPECT().
		Update(gomock.Any(), testContactID, testOwnerID, repository.ContactPatch{
			SetPhone: true,
			Phone:    strPtr("999"),
			SetEmail: true,
			Email:    nil,
		}).
		Return(sampleContact(), nil)

	_, err := svc.Update(context.Background(), testContactID, testOwnerID, &models.ContactPatchRequest{
		Phone: models.OptionalString{Set: true, Value: strPtr("999")},
		Email: models.OptionalString{Set: true},
	})
	require.NoError(t, err)
}

func TestContactService_UpdateValidation(t *testing.T) {
	svc, _ := newUncachedContactService(t)

	cases := map[string]models.ContactPatchRequest{
		"empty patch": {},
		"null name":   {Name: models.OptionalString{Set: true}},
		"blank name":  {Name: models.OptionalString{Set: true, Value: strPtr(" ")}},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), testContactID, testOwnerID, &req)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestContactService_GetReadsThroughCache(t *testing.T) {
	svc, repo, mr := newCachedContactService(t)
	want := sampleContact()

	repo.EXPECT().FindByID(gomock.Any(), testContactID, testOwnerID).Return(want, nil).Times(1)

	first, err := svc.Get(context.Background(), testContactID, testOwnerID)
	require.NoError(t, err)
	assert.True(t, mr.Exists(contactKey(testOwnerID, testContactID)))

	second, err := svc.Get(context.Background(), testContactID, testOwnerID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, *first.Email, *second.Email)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
}

func TestContactService_CacheIsOwnerScoped(t *testing.T) {
	svc, repo, _ := newCachedContactService(t)
	otherOwner := "11111111-2222-4333-8444-555555555555"

	repo.EXPECT().FindByID(gomock.Any(), testContactID, testOwnerID).Return(sampleContact(), nil)
	repo.EXPECT().FindByID(gomock.Any(), testContactID, otherOwner).Return(nil, apperrors.ErrNotFound)

	_, err := svc.Get(context.Background(), testContactID, testOwnerID)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), testContactID, otherOwner)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestContactService_MutationsRefreshCache(t *testing.T) {
	svc, repo, mr := newCachedContactService(t)
	key := contactKey(testOwnerID, testContactID)

	updated := sampleContact()
	updated.Phone = strPtr("999")
	repo.EXPECT().Update(gomock.Any(), testContactID, testOwnerID, gomock.Any()).Return(updated, nil)

	_, err := svc.Update(context.Background(), testContactID, testOwnerID, &models.ContactPatchRequest{
		Phone: models.OptionalString{Set: true, Value: strPtr("999")},
	})
	require.NoError(t, err)

	cached, err := mr.Get(key)
	require.NoError(t, err)
	assert.Contains(t, cached, `"phone":"999"`)

	repo.EXPECT().Delete(gomock.Any(), testContactID, testOwnerID).Return(nil)
	require.NoError(t, svc.Delete(context.Background(), testContactID, testOwnerID))
	assert.False(t, mr.Exists(key))
}

func TestContactService_DeleteNotFoundKeepsError(t *testing.T) {
	svc, repo, _ := newCachedContactService(t)

	repo.EXPECT().Delete(gomock.Any(), testContactID, testOwnerID).Return(apperrors.ErrNotFound)

	err := svc.Delete(context.Background(), testContactID, testOwnerID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestContactService_CacheFailuresAreIgnored(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	c, err := cache.NewRedisCache(mr.Addr())
	require.NoError(t, err)
	defer c.Close()

	core, logs := observer.New(zapcore.WarnLevel)
	repo := mocks.NewMockContactRepository(gomock.NewController(t))
	svc := NewContactService(repo, c, time.Minute, zap.New(core))

	mr.Close()

	repo.EXPECT().FindByID(gomock.Any(), testContactID, testOwnerID).Return(sampleContact(), nil)

	got, err := svc.Get(context.Background(), testContactID, testOwnerID)
	require.NoError(t, err)
	assert.Equal(t, testContactID, got.ID)

	assert.Equal(t, 1, logs.FilterMessage("contact cache read failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("contact cache write failed").Len())
}

func TestContactService_RepositoryErrorPassesThrough(t *testing.T) {
	svc, repo := newUncachedContactService(t)
	dbErr := errors.New("boom")

	repo.EXPECT().List(gomock.Any(), testOwnerID, gomock.Any()).Return(nil, dbErr)

	_, err := svc.List(context.Background(), testOwnerID, models.ContactFilter{})
	assert.ErrorIs(t, err, dbErr)
}
