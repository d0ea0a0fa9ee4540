package cache

import (
	"context"
	"testing"

	"github.com/fleet/backend/internal/domain/identity"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubCompanyRepo struct {
	company *identity.Company
	calls   int
}

func (s *stubCompanyRepo) FindByID(_ context.Context, _ uuid.UUID) (*identity.Company, error) {
	return nil, shared.ErrNotFound
}

func (s *stubCompanyRepo) FindByAPIKey(_ context.Context, apiKey string) (*identity.Company, error) {
	s.calls++
	if s.company != nil && s.company.APIKey == apiKey {
		return s.company, nil
	}
	return nil, shared.ErrNotFound
}

func (s *stubCompanyRepo) FindAll(_ context.Context, _ shared.Filter) ([]identity.Company, error) {
	return nil, nil
}

func (s *stubCompanyRepo) Save(_ context.Context, _ *identity.Company) error { return nil }

func (s *stubCompanyRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func TestCompanyCache_NilClientPassesThrough(t *testing.T) {
	company, err := identity.NewCompany("Acme", "ops@acme.test")
	require.NoError(t, err)
	repo := &stubCompanyRepo{company: company}

	cache := NewCompanyCache(repo, nil, 0, zap.NewNop())

	got, err := cache.FindByAPIKey(context.Background(), company.APIKey)
	require.NoError(t, err)
	assert.Equal(t, company.ID, got.ID)
	assert.Equal(t, 1, repo.calls)

	// No caching without a client: every lookup hits the repository
	_, err = cache.FindByAPIKey(context.Background(), company.APIKey)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestCompanyCache_NilClientPropagatesNotFound(t *testing.T) {
	cache := NewCompanyCache(&stubCompanyRepo{}, nil, 0, zap.NewNop())

	_, err := cache.FindByAPIKey(context.Background(), "unknown")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
