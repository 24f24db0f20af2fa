package helpspot

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cast"
)

// StatusType is a request status definition.
type StatusType struct {
	ID   int
	Name string
}

func statusTypeFromMap(m map[string]any) StatusType {
	return StatusType{
		ID:   cast.ToInt(m["xStatus"]),
		Name: cast.ToString(m["sStatus"]),
	}
}

// ListStatusTypes lists status types. Private API only. activeOnly limits
// the listing to statuses still in use.
func (c *Client) ListStatusTypes(ctx context.Context, activeOnly bool) ([]StatusType, error) {
	params := url.Values{}
	params.Set("fActiveOnly", flag(activeOnly))

	result, err := c.call(ctx, http.MethodGet, "private.request.getStatusTypes", params, nil, true)
	if err != nil {
		return nil, fmt.Errorf("listing status types: %w", err)
	}

	raw := items(result, "results.status", "status")
	statuses := make([]StatusType, 0, len(raw))
	for _, m := range raw {
		statuses = append(statuses, statusTypeFromMap(m))
	}
	return statuses, nil
}
