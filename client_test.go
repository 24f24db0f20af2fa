package helpspot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, srv *httptest.Server, opts ...Option) *Client {
	t.Helper()
	c, err := New(srv.URL, opts...)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func jsonResponse(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func TestNew(t *testing.T) {
	t.Run("empty base URL", func(t *testing.T) {
		_, err := New("")
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
	})

	t.Run("invalid scheme", func(t *testing.T) {
		_, err := New("ftp://support.example.com")
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
	})

	t.Run("username without password", func(t *testing.T) {
		_, err := New("https://support.example.com", WithBasicAuth("user", ""))
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
	})

	t.Run("password without username", func(t *testing.T) {
		_, err := New("https://support.example.com", WithBasicAuth("", "secret"))
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
	})

	t.Run("token and basic auth together", func(t *testing.T) {
		_, err := New("https://support.example.com", WithToken("tok"), WithBasicAuth("user", "secret"))
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
	})

	t.Run("unsupported output format", func(t *testing.T) {
		_, err := New("https://support.example.com", WithOutput("php"))
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
	})

	t.Run("trailing slash stripped", func(t *testing.T) {
		c, err := New("https://support.example.com/")
		require.NoError(t, err)
		assert.Equal(t, "https://support.example.com", c.baseURL)
	})
}

func TestAuthHeaders(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"version":"5.0","min_version":"4.0"}`))
	}))
	defer srv.Close()

	t.Run("bearer token", func(t *testing.T) {
		c := testClient(t, srv, WithToken("tok123"))
		_, err := c.Version(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Bearer tok123", gotAuth)
	})

	t.Run("basic auth", func(t *testing.T) {
		c := testClient(t, srv, WithBasicAuth("user@example.com", "secret"))
		_, err := c.Version(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Basic dXNlckBleGFtcGxlLmNvbTpzZWNyZXQ=", gotAuth)
	})

	t.Run("no auth", func(t *testing.T) {
		c := testClient(t, srv)
		_, err := c.Version(context.Background())
		require.NoError(t, err)
		assert.Empty(t, gotAuth)
	})
}

func TestAPIErrorEnvelope(t *testing.T) {
	t.Run("single error", func(t *testing.T) {
		srv := httptest.NewServer(jsonResponse(`{"errors":{"error":{"id":101,"description":"Required field missing"}}}`))
		defer srv.Close()

		c := testClient(t, srv, WithToken("tok"))
		_, err := c.CreateRequest(context.Background(), NewRequest{Note: "help"})
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 101, apiErr.ID)
		assert.Contains(t, apiErr.Description, "Required field missing")
	})

	t.Run("list of errors surfaces the first", func(t *testing.T) {
		srv := httptest.NewServer(jsonResponse(`{"errors":{"error":[{"id":7,"description":"first"},{"id":8,"description":"second"}]}}`))
		defer srv.Close()

		c := testClient(t, srv, WithToken("tok"))
		_, err := c.Version(context.Background())
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 7, apiErr.ID)
		assert.Equal(t, "first", apiErr.Description)
	})
}

func TestAPIDisabled(t *testing.T) {
	srv := httptest.NewServer(jsonResponse(`{"reply":"Public API Not Enabled"}`))
	defer srv.Close()

	c := testClient(t, srv)
	_, err := c.Version(context.Background())
	var disabledErr *APIDisabledError
	require.ErrorAs(t, err, &disabledErr)
	assert.Contains(t, disabledErr.Reply, "Not Enabled")
}

func TestHTTPFailures(t *testing.T) {
	t.Run("non-2xx status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := testClient(t, srv)
		_, err := c.Version(context.Background())
		var httpErr *HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	})

	t.Run("undecodable body", func(t *testing.T) {
		srv := httptest.NewServer(jsonResponse(`this is not json`))
		defer srv.Close()

		c := testClient(t, srv)
		_, err := c.Version(context.Background())
		var httpErr *HTTPError
		require.ErrorAs(t, err, &httpErr)
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(nil)
		srv.Close()

		c, err := New(srv.URL)
		require.NoError(t, err)
		_, err = c.Version(context.Background())
		var httpErr *HTTPError
		require.ErrorAs(t, err, &httpErr)
	})
}

func TestAuthRequiredMakesNoCall(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := testClient(t, srv)

	_, err := c.ListFilters(context.Background())
	var authErr *AuthRequiredError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "private.user.getFilters", authErr.Method)

	_, err = c.SearchRequests(context.Background(), SearchOptions{Query: "printer"})
	require.ErrorAs(t, err, &authErr)

	_, err = c.ListStatusTypes(context.Background(), true)
	require.ErrorAs(t, err, &authErr)

	_, err = c.GetFilterResults(context.Background(), "inbox", FilterResultsOptions{})
	require.ErrorAs(t, err, &authErr)

	assert.Zero(t, calls)
}

func TestCallWiring(t *testing.T) {
	var gotPath, gotMethod, gotOutput string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.URL.Query().Get("method")
		gotOutput = r.URL.Query().Get("output")
		w.Write([]byte(`{"version":"5.0","min_version":"4.0"}`))
	}))
	defer srv.Close()

	c := testClient(t, srv)
	_, err := c.Version(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/api/index.php", gotPath)
	assert.Equal(t, "version", gotMethod)
	assert.Equal(t, "json", gotOutput)
}
