package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fleet/backend/internal/domain/integration"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestIntegration(t *testing.T, kind integration.PlatformKind, apiURL string) *integration.Integration {
	t.Helper()
	integ, err := integration.NewIntegration(uuid.New(), "Feed", kind, apiURL)
	require.NoError(t, err)
	integ.APIKey = "key"
	integ.APISecret = "secret"
	return integ
}

func TestFetchCollection_TopLevelArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/riders", r.URL.Path)
		w.Write([]byte(`[{"id": "r1", "name": "Sam"}, {"id": "r2", "name": "Kim"}]`))
	}))
	defer server.Close()

	client := NewHTTPFeedClient(5*time.Second, zap.NewNop())
	integ := newTestIntegration(t, integration.PlatformCustom, server.URL)

	records, err := client.FetchCollection(context.Background(), integ, integration.SyncEntityRiders)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "r1", records[0].String("id"))
	assert.Equal(t, "Sam", records[0].String("name"))
}

func TestFetchCollection_WrappedUnderDataKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [{"id": "r1", "name": "Sam", "phone": "555-2222"}]}`))
	}))
	defer server.Close()

	client := NewHTTPFeedClient(5*time.Second, zap.NewNop())
	integ := newTestIntegration(t, integration.PlatformCustom, server.URL)

	records, err := client.FetchCollection(context.Background(), integ, integration.SyncEntityRiders)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "r1", records[0].String("id"))
}

func TestFetchCollection_WrappedUnderKindKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"orders": [{"id": 7, "status": "shipped"}], "meta": {"page": 1}}`))
	}))
	defer server.Close()

	client := NewHTTPFeedClient(5*time.Second, zap.NewNop())
	integ := newTestIntegration(t, integration.PlatformCustom, server.URL)

	records, err := client.FetchCollection(context.Background(), integ, integration.SyncEntityOrders)

	require.NoError(t, err)
	require.Len(t, records, 1)
	// Numeric IDs are readable as strings
	assert.Equal(t, "7", records[0].String("id"))
}

func TestFetchCollection_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewHTTPFeedClient(5*time.Second, zap.NewNop())
	integ := newTestIntegration(t, integration.PlatformCustom, server.URL)

	_, err := client.FetchCollection(context.Background(), integ, integration.SyncEntityRiders)
	assert.ErrorIs(t, err, integration.ErrUpstreamFetch)
}

func TestFetchCollection_UndecodableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	client := NewHTTPFeedClient(5*time.Second, zap.NewNop())
	integ := newTestIntegration(t, integration.PlatformCustom, server.URL)

	_, err := client.FetchCollection(context.Background(), integ, integration.SyncEntityRiders)
	assert.ErrorIs(t, err, integration.ErrUpstreamResponse)
}

func TestFetchCollection_ObjectWithoutCollectionKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": "ok"}`))
	}))
	defer server.Close()

	client := NewHTTPFeedClient(5*time.Second, zap.NewNop())
	integ := newTestIntegration(t, integration.PlatformCustom, server.URL)

	_, err := client.FetchCollection(context.Background(), integ, integration.SyncEntityCustomers)
	assert.ErrorIs(t, err, integration.ErrUpstreamResponse)
}

func TestFetchCollection_WooCommerceBasicAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "key", user)
		assert.Equal(t, "secret", pass)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewHTTPFeedClient(5*time.Second, zap.NewNop())
	integ := newTestIntegration(t, integration.PlatformWooCommerce, server.URL)

	_, err := client.FetchCollection(context.Background(), integ, integration.SyncEntityOrders)
	require.NoError(t, err)
}

func TestFetchCollection_ShopifyAccessTokenHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.Header.Get("X-Shopify-Access-Token"))
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewHTTPFeedClient(5*time.Second, zap.NewNop())
	integ := newTestIntegration(t, integration.PlatformShopify, server.URL)

	_, err := client.FetchCollection(context.Background(), integ, integration.SyncEntityOrders)
	require.NoError(t, err)
}

func TestFetchCollection_BearerTokenForCustom(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewHTTPFeedClient(5*time.Second, zap.NewNop())
	integ := newTestIntegration(t, integration.PlatformCustom, server.URL)

	_, err := client.FetchCollection(context.Background(), integ, integration.SyncEntityOrders)
	require.NoError(t, err)
}

func TestFetchCollection_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewHTTPFeedClient(50*time.Millisecond, zap.NewNop())
	integ := newTestIntegration(t, integration.PlatformCustom, server.URL)

	_, err := client.FetchCollection(context.Background(), integ, integration.SyncEntityRiders)
	assert.ErrorIs(t, err, integration.ErrUpstreamFetch)
}
