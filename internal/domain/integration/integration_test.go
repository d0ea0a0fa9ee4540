package integration

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIntegration_Validation(t *testing.T) {
	companyID := uuid.New()

	_, err := NewIntegration(companyID, "", PlatformShopify, "https://x.test")
	assert.Error(t, err)

	_, err = NewIntegration(companyID, "Store", PlatformKind("ebay"), "https://x.test")
	assert.Error(t, err)

	_, err = NewIntegration(companyID, "Store", PlatformShopify, "not a url")
	assert.Error(t, err)
}

func TestNewIntegration_Defaults(t *testing.T) {
	integ, err := NewIntegration(uuid.New(), "Store", PlatformWooCommerce, "https://shop.test/wp-json/")
	require.NoError(t, err)

	assert.True(t, integ.IsActive)
	assert.True(t, integ.SyncOrders)
	assert.False(t, integ.SyncRiders)
	assert.False(t, integ.SyncCustomers)
	// Trailing slash is normalized so EndpointFor never doubles it
	assert.Equal(t, "https://shop.test/wp-json", integ.APIURL)
}

func TestEndpointFor(t *testing.T) {
	integ, err := NewIntegration(uuid.New(), "Store", PlatformCustom, "https://api.test")
	require.NoError(t, err)

	assert.Equal(t, "https://api.test/riders", integ.EndpointFor(SyncEntityRiders))

	integ.OrdersEndpoint = "v2/orders"
	assert.Equal(t, "https://api.test/v2/orders", integ.EndpointFor(SyncEntityOrders))

	integ.CustomersEndpoint = ""
	assert.Equal(t, "https://api.test/customers", integ.EndpointFor(SyncEntityCustomers))
}

func TestRecordSyncOutcome(t *testing.T) {
	integ, err := NewIntegration(uuid.New(), "Store", PlatformCustom, "https://api.test")
	require.NoError(t, err)

	integ.RecordSyncOutcome(SyncStatusPartial, "riders: timeout", 2, 5, 1)

	require.NotNil(t, integ.LastSyncAt)
	assert.Equal(t, SyncStatusPartial, integ.LastSyncStatus)
	assert.Equal(t, "riders: timeout", integ.LastSyncError)
	assert.Equal(t, int64(2), integ.TotalRidersSynced)
	assert.Equal(t, int64(5), integ.TotalOrdersSynced)
	assert.Equal(t, int64(1), integ.TotalCustomersSynced)

	// Totals accumulate across runs
	integ.RecordSyncOutcome(SyncStatusSuccess, "", 0, 3, 0)
	assert.Equal(t, SyncStatusSuccess, integ.LastSyncStatus)
	assert.Empty(t, integ.LastSyncError)
	assert.Equal(t, int64(8), integ.TotalOrdersSynced)
}

func TestParsePlatformKind(t *testing.T) {
	assert.Equal(t, PlatformWooCommerce, ParsePlatformKind("woocommerce"))
	assert.Equal(t, PlatformShopify, ParsePlatformKind("Shopify"))
	assert.Equal(t, PlatformCustom, ParsePlatformKind("something-else"))
}
