package integration

import (
	"context"
	"strconv"
)

// ---------------------------------------------------------------------------
// FeedClient Port Interface
// ---------------------------------------------------------------------------

// FeedRecord is one raw element of an external collection. External APIs
// are only partially trustworthy, so records cross the boundary as loose
// maps and are validated by the kind-specific transforms.
type FeedRecord map[string]any

// String returns the string value of a field, tolerating numeric IDs
// encoded as JSON numbers.
func (r FeedRecord) String(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case float64:
		// JSON numbers decode as float64; IDs are integral in practice
		return trimFloat(v)
	default:
		return ""
	}
}

// Float returns the float value of a field, tolerating string encoding
func (r FeedRecord) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case string:
		return parseFloat(v)
	default:
		return 0
	}
}

// trimFloat renders an integral float without a fraction part
func trimFloat(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseFloat parses a float, returning 0 for anything unparseable
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// FeedClient defines the port for pulling entity collections from a
// configured external API. The concrete HTTP implementation lives in the
// infrastructure layer; the orchestrator only sees this interface.
type FeedClient interface {
	// FetchCollection issues one GET to the integration's endpoint for the
	// given entity kind and returns the decoded records. The response body
	// may be a top-level array or an object wrapping the array under the
	// entity kind's key or "data"; both shapes are accepted.
	//
	// Returns ErrUpstreamFetch (wrapped) on non-2xx responses and
	// transport failures, ErrUpstreamResponse on undecodable bodies.
	FetchCollection(ctx context.Context, integ *Integration, kind SyncEntityKind) ([]FeedRecord, error)
}
