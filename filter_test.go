package helpspot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFilters(t *testing.T) {
	srv, cap := captureServer(t, `{"filters":{"filter":[
		{"xFilter":"inbox","sFilterName":"Inbox","fGlobal":"1","count":"12","unread":"3"},
		{"xFilter":"17","sFilterName":"My Hardware","fGlobal":"0","count":"4"}
	]}}`)
	c := testClient(t, srv, WithToken("tok"))

	filters, err := c.ListFilters(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "private.user.getFilters", cap.method)
	require.Len(t, filters, 2)

	assert.Equal(t, "inbox", filters[0].ID)
	assert.Equal(t, "Inbox", filters[0].Name)
	assert.True(t, filters[0].Global)
	assert.Equal(t, 12, filters[0].Count)
	assert.Equal(t, 3, filters[0].Unread)

	assert.Equal(t, "17", filters[1].ID)
	assert.False(t, filters[1].Global)
}

func TestGetFilterResults(t *testing.T) {
	body := `{"filter":{"request":[{"xRequest":"1","sTitle":"a"},{"xRequest":"2","sTitle":"b"}]}}`

	t.Run("symbolic filter id with pagination", func(t *testing.T) {
		srv, cap := captureServer(t, body)
		c := testClient(t, srv, WithToken("tok"))

		reqs, err := c.GetFilterResults(context.Background(), "myq", FilterResultsOptions{Start: 10, Length: 25, RawValues: true})
		require.NoError(t, err)

		assert.Equal(t, "private.filter.get", cap.method)
		assert.Equal(t, "myq", cap.query.Get("xFilter"))
		assert.Equal(t, "10", cap.query.Get("start"))
		assert.Equal(t, "25", cap.query.Get("length"))
		assert.Equal(t, "1", cap.query.Get("fRawValues"))
		assert.Len(t, reqs, 2)
	})

	t.Run("default page size", func(t *testing.T) {
		srv, cap := captureServer(t, body)
		c := testClient(t, srv, WithToken("tok"))

		_, err := c.GetFilterResults(context.Background(), "17", FilterResultsOptions{})
		require.NoError(t, err)
		assert.Equal(t, "50", cap.query.Get("length"))
		assert.Empty(t, cap.query.Get("fRawValues"))
	})

	t.Run("missing filter id", func(t *testing.T) {
		srv, _ := captureServer(t, body)
		c := testClient(t, srv, WithToken("tok"))

		_, err := c.GetFilterResults(context.Background(), "", FilterResultsOptions{})
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
	})
}

func TestCustomerRequests(t *testing.T) {
	t.Run("public lookup by portal credentials", func(t *testing.T) {
		srv, cap := captureServer(t, `{"requests":{"request":{"xRequest":"55","sEmail":"jane@example.com","sFirstName":"Jane","sLastName":"Doe"}}}`)
		c := testClient(t, srv)

		reqs, err := c.CustomerRequests(context.Background(), "jane@example.com", "hunter2")
		require.NoError(t, err)

		assert.Equal(t, "customer.getRequests", cap.method)
		assert.Equal(t, "jane@example.com", cap.query.Get("sEmail"))
		assert.Equal(t, "hunter2", cap.query.Get("sPassword"))

		require.Len(t, reqs, 1)
		cust := reqs[0].Customer()
		assert.Equal(t, "Jane", cust.FirstName)
		assert.Equal(t, "Doe", cust.LastName)
		assert.Equal(t, "jane@example.com", cust.Email)
	})

	t.Run("missing credentials", func(t *testing.T) {
		srv, _ := captureServer(t, `{}`)
		c := testClient(t, srv)

		_, err := c.CustomerRequests(context.Background(), "jane@example.com", "")
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
	})
}
