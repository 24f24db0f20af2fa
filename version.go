package helpspot

import (
	"context"
	"fmt"
	"net/http"

	goversion "github.com/hashicorp/go-version"
	"github.com/spf13/cast"
)

// ClientAPIVersion is the HelpSpot API version this client was written
// against, for comparison with the server's reported minimum.
const ClientAPIVersion = "4.0"

// VersionInfo is the server's version report: its own version and the
// minimum API version it still supports.
type VersionInfo struct {
	Version    string
	MinVersion string
}

// Version fetches the server's version information. Always public, fetched
// fresh per call.
func (c *Client) Version(ctx context.Context) (VersionInfo, error) {
	result, err := c.call(ctx, http.MethodGet, "version", nil, nil, false)
	if err != nil {
		return VersionInfo{}, fmt.Errorf("getting version: %w", err)
	}

	return VersionInfo{
		Version:    cast.ToString(result["version"]),
		MinVersion: cast.ToString(result["min_version"]),
	}, nil
}

// Compatible reports whether an integration built against API version v
// meets the server's minimum supported version.
func (vi VersionInfo) Compatible(v string) (bool, error) {
	have, err := goversion.NewVersion(v)
	if err != nil {
		return false, fmt.Errorf("parsing version %q: %w", v, err)
	}
	min, err := goversion.NewVersion(vi.MinVersion)
	if err != nil {
		return false, fmt.Errorf("parsing minimum version %q: %w", vi.MinVersion, err)
	}
	return have.GreaterThanOrEqual(min), nil
}
