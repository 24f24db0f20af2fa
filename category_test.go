package helpspot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCategories(t *testing.T) {
	t.Run("id keyed envelope", func(t *testing.T) {
		srv, cap := captureServer(t, `{"category":{
			"43":{"xCategory":"43","sCategory":"Hardware","xPersonDefault":"7","fAutoAssignTo":"2"},
			"35":{"xCategory":"35","sCategory":"Software","xPersonDefault":"0"}
		}}`)
		c := testClient(t, srv, WithToken("tok"))

		cats, err := c.ListCategories(context.Background())
		require.NoError(t, err)
		require.Len(t, cats, 2)
		assert.Equal(t, "private.request.getCategories", cap.method)

		byID := map[int]Category{}
		for _, cat := range cats {
			byID[cat.ID] = cat
		}

		hw := byID[43]
		assert.Equal(t, "Hardware", hw.Name)
		require.NotNil(t, hw.DefaultPerson)
		assert.Equal(t, 7, *hw.DefaultPerson)
		assert.Equal(t, 2, hw.AutoAssign)

		sw := byID[35]
		assert.Nil(t, sw.DefaultPerson)
		assert.True(t, sw.AllowPublicSubmit)
	})

	t.Run("alternate envelope", func(t *testing.T) {
		srv, _ := captureServer(t, `{"categories":{"category":[{"xCategory":"1","sCategory":"Billing","fAllowPublicSubmit":"0"}]}}`)
		c := testClient(t, srv, WithToken("tok"))

		cats, err := c.ListCategories(context.Background())
		require.NoError(t, err)
		require.Len(t, cats, 1)
		assert.Equal(t, "Billing", cats[0].Name)
		assert.False(t, cats[0].AllowPublicSubmit)
	})

	t.Run("public method without credentials", func(t *testing.T) {
		srv, cap := captureServer(t, `{"category":{}}`)
		c := testClient(t, srv)

		cats, err := c.ListCategories(context.Background())
		require.NoError(t, err)
		assert.Empty(t, cats)
		assert.Equal(t, "request.getCategories", cap.method)
	})
}

func TestListCustomFields(t *testing.T) {
	body := `{"customfields":{"field":[
		{"xCustomField":"1","fieldName":"Serial Number","fieldType":"text","isRequired":"1","iOrder":"10","sRegex":"^[A-Z]{2}\\d+$"},
		{"xCustomField":"2","fieldName":"Site","fieldType":"select","listItems":["HQ","Remote"]}
	]}}`

	t.Run("lists fields", func(t *testing.T) {
		srv, cap := captureServer(t, body)
		c := testClient(t, srv, WithToken("tok"))

		fields, err := c.ListCustomFields(context.Background(), 0)
		require.NoError(t, err)
		require.Len(t, fields, 2)
		assert.Equal(t, "private.request.getCustomFields", cap.method)
		assert.Empty(t, cap.query.Get("xCategory"))

		assert.Equal(t, 1, fields[0].ID)
		assert.Equal(t, "Serial Number", fields[0].Name)
		assert.True(t, fields[0].Required)
		assert.True(t, fields[0].Public)
		assert.Equal(t, 10, fields[0].Order)
		assert.NotEmpty(t, fields[0].Regex)

		assert.Equal(t, []string{"HQ", "Remote"}, fields[1].ListItems)
	})

	t.Run("category filter", func(t *testing.T) {
		srv, cap := captureServer(t, body)
		c := testClient(t, srv, WithToken("tok"))

		_, err := c.ListCustomFields(context.Background(), 4)
		require.NoError(t, err)
		assert.Equal(t, "4", cap.query.Get("xCategory"))
	})

	t.Run("category filter requires credentials", func(t *testing.T) {
		srv, _ := captureServer(t, body)
		c := testClient(t, srv)

		_, err := c.ListCustomFields(context.Background(), 4)
		var authErr *AuthRequiredError
		require.ErrorAs(t, err, &authErr)
	})
}

func TestListStatusTypes(t *testing.T) {
	srv, cap := captureServer(t, `{"results":{"status":[
		{"xStatus":"1","sStatus":"Active"},
		{"xStatus":"2","sStatus":"Closed"}
	]}}`)
	c := testClient(t, srv, WithToken("tok"))

	statuses, err := c.ListStatusTypes(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, "private.request.getStatusTypes", cap.method)
	assert.Equal(t, "1", cap.query.Get("fActiveOnly"))
	require.Len(t, statuses, 2)
	assert.Equal(t, StatusType{ID: 1, Name: "Active"}, statuses[0])
	assert.Equal(t, StatusType{ID: 2, Name: "Closed"}, statuses[1])
}
