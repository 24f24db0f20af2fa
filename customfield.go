package helpspot

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cast"
)

// CustomField is a custom field definition.
type CustomField struct {
	ID            int
	Name          string
	Type          string
	Required      bool
	Public        bool
	Order         int
	TextSize      string
	LargeTextRows int
	ListItems     []string
	DecimalPlaces int
	Regex         string
	AjaxURL       string
	AlwaysVisible bool
}

func customFieldFromMap(m map[string]any) CustomField {
	return CustomField{
		ID:            cast.ToInt(m["xCustomField"]),
		Name:          cast.ToString(m["fieldName"]),
		Type:          cast.ToString(m["fieldType"]),
		Required:      cast.ToBool(m["isRequired"]),
		Public:        optFlag(m, "isPublic"),
		Order:         cast.ToInt(m["iOrder"]),
		TextSize:      cast.ToString(m["sTxtSize"]),
		LargeTextRows: cast.ToInt(m["lrgTextRows"]),
		ListItems:     cast.ToStringSlice(m["listItems"]),
		DecimalPlaces: cast.ToInt(m["iDecimalPlaces"]),
		Regex:         cast.ToString(m["sRegex"]),
		AjaxURL:       cast.ToString(m["sAjaxUrl"]),
		AlwaysVisible: cast.ToBool(m["isAlwaysVisible"]),
	}
}

// ListCustomFields lists custom field definitions. categoryID filters the
// fields to one category; 0 means all. The category filter only exists on
// the private API, so it requires credentials.
func (c *Client) ListCustomFields(ctx context.Context, categoryID int) ([]CustomField, error) {
	params := url.Values{}
	method, private := c.route("request.getCustomFields")
	if categoryID != 0 {
		params.Set("xCategory", strconv.Itoa(categoryID))
		private = true
	}

	result, err := c.call(ctx, http.MethodGet, method, params, nil, private)
	if err != nil {
		return nil, fmt.Errorf("listing custom fields: %w", err)
	}

	raw := items(result, "customfields.field")
	fields := make([]CustomField, 0, len(raw))
	for _, m := range raw {
		fields = append(fields, customFieldFromMap(m))
	}
	return fields, nil
}
