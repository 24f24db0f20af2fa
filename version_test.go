package helpspot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(jsonResponse(`{"version":"5.0","min_version":"4.0"}`))
	defer srv.Close()

	c := testClient(t, srv)
	vi, err := c.Version(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "5.0", vi.Version)
	assert.Equal(t, "4.0", vi.MinVersion)
}

func TestVersionXMLOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "xml", r.URL.Query().Get("output"))
		w.Header().Set("Content-Type", "text/xml")
		w.Write([]byte(`<results><version>5.0</version><min_version>4.0</min_version></results>`))
	}))
	defer srv.Close()

	c := testClient(t, srv, WithOutput(OutputXML))
	vi, err := c.Version(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "5.0", vi.Version)
	assert.Equal(t, "4.0", vi.MinVersion)
}

func TestCompatible(t *testing.T) {
	vi := VersionInfo{Version: "5.0", MinVersion: "4.0"}

	ok, err := vi.Compatible("4.5")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = vi.Compatible("4.0")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = vi.Compatible("3.2")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = vi.Compatible("not-a-version")
	require.Error(t, err)
}
