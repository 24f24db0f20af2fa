package helpspot

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cast"
)

// Category is a request category. DefaultPerson is nil when the category
// has no default assignee; AutoAssign is an opaque numeric mode where 0
// means off.
type Category struct {
	ID                int
	Name              string
	Group             string
	Deleted           bool
	AllowPublicSubmit bool
	DefaultPerson     *int
	AutoAssign        int
}

func categoryFromMap(m map[string]any) Category {
	return Category{
		ID:                cast.ToInt(m["xCategory"]),
		Name:              cast.ToString(m["sCategory"]),
		Group:             cast.ToString(m["sCategoryGroup"]),
		Deleted:           cast.ToBool(m["fDeleted"]),
		AllowPublicSubmit: optFlag(m, "fAllowPublicSubmit"),
		DefaultPerson:     optInt(m["xPersonDefault"]),
		AutoAssign:        cast.ToInt(m["fAutoAssignTo"]),
	}
}

// ListCategories lists all request categories, public or private per the
// client's credentials. The endpoint has used two envelope shapes over
// time; both are handled.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	method, private := c.route("request.getCategories")
	result, err := c.call(ctx, http.MethodGet, method, nil, nil, private)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	raw := items(result, "category", "categories.category")
	cats := make([]Category, 0, len(raw))
	for _, m := range raw {
		cats = append(cats, categoryFromMap(m))
	}
	return cats, nil
}
