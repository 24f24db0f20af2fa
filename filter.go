package helpspot

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-querystring/query"
	"github.com/spf13/cast"
)

// Filter is a saved search definition. The ID may be numeric or one of the
// symbolic built-ins such as "inbox" or "myq".
type Filter struct {
	ID     string
	Name   string
	Folder string
	Global bool
	Count  int
	Unread int
}

func filterFromMap(m map[string]any) Filter {
	return Filter{
		ID:     cast.ToString(m["xFilter"]),
		Name:   cast.ToString(m["sFilterName"]),
		Folder: cast.ToString(m["sFilterFolder"]),
		Global: cast.ToBool(m["fGlobal"]),
		Count:  cast.ToInt(m["count"]),
		Unread: cast.ToInt(m["unread"]),
	}
}

// FilterResultsOptions control pagination of GetFilterResults. Length
// defaults to 50. RawValues asks for numeric codes instead of display text.
type FilterResultsOptions struct {
	Start     int  `url:"start"`
	Length    int  `url:"length"`
	RawValues bool `url:"fRawValues,omitempty,int"`
}

// ListFilters lists the saved filters visible to the authenticated user.
// Private API only.
func (c *Client) ListFilters(ctx context.Context) ([]Filter, error) {
	result, err := c.call(ctx, http.MethodGet, "private.user.getFilters", nil, nil, true)
	if err != nil {
		return nil, fmt.Errorf("listing filters: %w", err)
	}

	raw := items(result, "filters.filter")
	filters := make([]Filter, 0, len(raw))
	for _, m := range raw {
		filters = append(filters, filterFromMap(m))
	}
	return filters, nil
}

// GetFilterResults fetches one page of the requests matched by a filter.
// Private API only.
func (c *Client) GetFilterResults(ctx context.Context, filterID string, opts FilterResultsOptions) ([]Request, error) {
	if filterID == "" {
		return nil, &ValidationError{Reason: "a filter ID must be provided"}
	}
	if opts.Length == 0 {
		opts.Length = 50
	}

	params, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("encoding filter parameters: %w", err)
	}
	params.Set("xFilter", filterID)

	result, err := c.call(ctx, http.MethodGet, "private.filter.get", params, nil, true)
	if err != nil {
		return nil, fmt.Errorf("getting filter results: %w", err)
	}

	return requestsFromItems(items(result, "filter.request")), nil
}
