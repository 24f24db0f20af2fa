package helpspot

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Customer is the identity portion of a request. Customers have no
// server-side identity of their own; they are keyed by email.
type Customer struct {
	UserID    string
	FirstName string
	LastName  string
	FullName  string
	Email     string
	Phone     string
}

// Customer returns the customer identity embedded in a request record.
func (r Request) Customer() Customer {
	return Customer{
		UserID:    r.UserID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		FullName:  r.FullName,
		Email:     r.Email,
		Phone:     r.Phone,
	}
}

// CustomerRequests fetches a customer's request history using the
// customer's own portal credentials, which are separate from the client's
// staff credentials. Public API.
func (c *Client) CustomerRequests(ctx context.Context, email, password string) ([]Request, error) {
	if email == "" || password == "" {
		return nil, &ValidationError{Reason: "customer email and password must both be provided"}
	}

	params := url.Values{}
	params.Set("sEmail", email)
	params.Set("sPassword", password)

	result, err := c.call(ctx, http.MethodGet, "customer.getRequests", params, nil, false)
	if err != nil {
		return nil, fmt.Errorf("getting customer requests: %w", err)
	}

	return requestsFromItems(items(result, "requests.request")), nil
}
