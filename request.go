package helpspot

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/go-querystring/query"
	"github.com/spf13/cast"
)

// Request is a HelpSpot support request (ticket). Reference fields such as
// Status and Category carry display text by default and numeric codes when
// raw values are requested.
type Request struct {
	ID              int
	Title           string
	Note            string
	AccessKey       string
	Status          string
	Category        string
	AssignedTo      string
	OpenedBy        string
	OpenedVia       string
	OpenedViaID     int
	Open            bool
	Urgent          bool
	Trash           bool
	OpenedAt        int64
	ClosedAt        int64
	TrashedAt       int64
	LastReplyBy     string
	RequestPassword string
	UserID          string
	FirstName       string
	LastName        string
	FullName        string
	Email           string
	Phone           string
}

func requestFromMap(m map[string]any) Request {
	return Request{
		ID:              cast.ToInt(m["xRequest"]),
		Title:           cast.ToString(m["sTitle"]),
		Note:            cast.ToString(m["tNote"]),
		AccessKey:       cast.ToString(m["accesskey"]),
		Status:          cast.ToString(m["xStatus"]),
		Category:        cast.ToString(m["xCategory"]),
		AssignedTo:      cast.ToString(m["xPersonAssignedTo"]),
		OpenedBy:        cast.ToString(m["xPersonOpenedBy"]),
		OpenedVia:       cast.ToString(m["fOpenedVia"]),
		OpenedViaID:     cast.ToInt(m["xOpenedViaId"]),
		Open:            cast.ToBool(m["fOpen"]),
		Urgent:          cast.ToBool(m["fUrgent"]),
		Trash:           cast.ToBool(m["fTrash"]),
		OpenedAt:        toEpoch(m["dtGMTOpened"]),
		ClosedAt:        toEpoch(m["dtGMTClosed"]),
		TrashedAt:       toEpoch(m["dtGMTTrashed"]),
		LastReplyBy:     cast.ToString(m["iLastReplyBy"]),
		RequestPassword: cast.ToString(m["sRequestPassword"]),
		UserID:          cast.ToString(m["sUserId"]),
		FirstName:       cast.ToString(m["sFirstName"]),
		LastName:        cast.ToString(m["sLastName"]),
		FullName:        cast.ToString(m["fullname"]),
		Email:           cast.ToString(m["sEmail"]),
		Phone:           cast.ToString(m["sPhone"]),
	}
}

// File is an attachment for request creation or update.
type File struct {
	Filename string
	MimeType string
	Content  []byte
}

// NewRequest holds the fields for creating a request. Note is required; at
// least one of the customer identity fields (Email, FirstName, LastName,
// UserID, Phone) should be set, but the server is authoritative about that.
type NewRequest struct {
	Note         string
	Title        string
	CategoryID   int
	Email        string
	FirstName    string
	LastName     string
	UserID       string
	Phone        string
	Urgent       bool
	PortalID     int
	CustomFields map[int]string
	Files        []File
}

// RequestUpdate holds the fields for updating a request. Either ID (private
// API) or AccessKey (public API) selects the request; Note is required.
// Nil optional fields are omitted from the call, which the server treats as
// "leave unchanged", not "clear".
type RequestUpdate struct {
	ID           int
	AccessKey    string
	Note         string
	Title        string
	CategoryID   *int
	AssignedTo   *int
	StatusID     *int
	Open         *bool
	Urgent       *bool
	CustomFields map[int]string
	Files        []File
}

// GetRequestOptions selects a request by ID (private API) or by access key
// (public API). When both are set the ID wins. RawValues asks the server
// for numeric codes instead of display text; it only applies to the
// private variant.
type GetRequestOptions struct {
	ID        int
	AccessKey string
	RawValues bool
}

// SearchOptions are the parameters for SearchRequests. Zero-valued filters
// are omitted; Length defaults to 50 and OrderDir to "desc".
type SearchOptions struct {
	Query      string `url:"sSearch,omitempty"`
	ID         int    `url:"xRequest,omitempty"`
	UserID     string `url:"sUserId,omitempty"`
	Email      string `url:"sEmail,omitempty"`
	StatusID   int    `url:"xStatus,omitempty"`
	CategoryID int    `url:"xCategory,omitempty"`
	Open       *bool  `url:"fOpen,omitempty,int"`
	AssignedTo int    `url:"xPersonAssignedTo,omitempty"`
	Start      int    `url:"start"`
	Length     int    `url:"length"`
	OrderBy    string `url:"orderBy,omitempty"`
	OrderDir   string `url:"orderByDir"`
	RawValues  bool   `url:"fRawValues,omitempty,int"`
}

// GetRequest fetches one request. An ID routes to the private API, an
// access key to the public one; neither is a *ValidationError with no
// network call.
func (c *Client) GetRequest(ctx context.Context, opts GetRequestOptions) (Request, error) {
	params := url.Values{}
	var method string
	var private bool

	switch {
	case opts.ID != 0:
		method, private = "private.request.get", true
		params.Set("xRequest", strconv.Itoa(opts.ID))
		if opts.RawValues {
			params.Set("fRawValues", "1")
		}
	case opts.AccessKey != "":
		method = "request.get"
		params.Set("accesskey", opts.AccessKey)
	default:
		return Request{}, &ValidationError{Reason: "either a request ID or an access key must be provided"}
	}

	result, err := c.call(ctx, http.MethodGet, method, params, nil, private)
	if err != nil {
		return Request{}, fmt.Errorf("getting request: %w", err)
	}

	return unwrapRequest(result), nil
}

// CreateRequest creates a request, routed to the private or public variant
// per the client's credentials. The returned record carries the assigned ID
// and, for public creation, the access key.
func (c *Client) CreateRequest(ctx context.Context, nr NewRequest) (Request, error) {
	if nr.Note == "" {
		return Request{}, &ValidationError{Reason: "a note is required to create a request"}
	}

	data := url.Values{}
	data.Set("tNote", nr.Note)
	if nr.Title != "" {
		data.Set("sTitle", nr.Title)
	}
	if nr.CategoryID != 0 {
		data.Set("xCategory", strconv.Itoa(nr.CategoryID))
	}
	if nr.Email != "" {
		data.Set("sEmail", nr.Email)
	}
	if nr.FirstName != "" {
		data.Set("sFirstName", nr.FirstName)
	}
	if nr.LastName != "" {
		data.Set("sLastName", nr.LastName)
	}
	if nr.UserID != "" {
		data.Set("sUserId", nr.UserID)
	}
	if nr.Phone != "" {
		data.Set("sPhone", nr.Phone)
	}
	if nr.Urgent {
		data.Set("fUrgent", "1")
	}
	if nr.PortalID != 0 {
		data.Set("xPortal", strconv.Itoa(nr.PortalID))
	}
	addCustomFields(data, nr.CustomFields)
	addFiles(data, nr.Files)

	method, private := c.route("request.create")
	result, err := c.call(ctx, http.MethodPost, method, nil, data, private)
	if err != nil {
		return Request{}, fmt.Errorf("creating request: %w", err)
	}

	return unwrapRequest(result), nil
}

// UpdateRequest adds a note to a request and applies any optional field
// changes. The same ID / access-key selection as GetRequest applies.
func (c *Client) UpdateRequest(ctx context.Context, upd RequestUpdate) (Request, error) {
	if upd.Note == "" {
		return Request{}, &ValidationError{Reason: "a note is required to update a request"}
	}

	data := url.Values{}
	data.Set("tNote", upd.Note)

	var method string
	var private bool
	switch {
	case upd.ID != 0:
		method, private = "private.request.update", true
		data.Set("xRequest", strconv.Itoa(upd.ID))
	case upd.AccessKey != "":
		method = "request.update"
		data.Set("accesskey", upd.AccessKey)
	default:
		return Request{}, &ValidationError{Reason: "either a request ID or an access key must be provided"}
	}

	if upd.Title != "" {
		data.Set("sTitle", upd.Title)
	}
	if upd.CategoryID != nil {
		data.Set("xCategory", strconv.Itoa(*upd.CategoryID))
	}
	if upd.AssignedTo != nil {
		data.Set("xPersonAssignedTo", strconv.Itoa(*upd.AssignedTo))
	}
	if upd.StatusID != nil {
		data.Set("xStatus", strconv.Itoa(*upd.StatusID))
	}
	if upd.Open != nil {
		data.Set("fOpen", flag(*upd.Open))
	}
	if upd.Urgent != nil {
		data.Set("fUrgent", flag(*upd.Urgent))
	}
	addCustomFields(data, upd.CustomFields)
	addFiles(data, upd.Files)

	result, err := c.call(ctx, http.MethodPost, method, nil, data, private)
	if err != nil {
		return Request{}, fmt.Errorf("updating request: %w", err)
	}

	return unwrapRequest(result), nil
}

// SearchRequests runs a full-text and field-filtered search. Private API
// only.
func (c *Client) SearchRequests(ctx context.Context, opts SearchOptions) ([]Request, error) {
	if opts.Length == 0 {
		opts.Length = 50
	}
	if opts.OrderDir == "" {
		opts.OrderDir = "desc"
	}

	params, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("encoding search parameters: %w", err)
	}

	result, err := c.call(ctx, http.MethodGet, "private.request.search", params, nil, true)
	if err != nil {
		return nil, fmt.Errorf("searching requests: %w", err)
	}

	return requestsFromItems(items(result, "requests.request")), nil
}

// Some endpoints wrap the record in a "request" key, others return it
// directly; creation responses are the bare {"xRequest": ..} form.
func unwrapRequest(result map[string]any) Request {
	if m, ok := result["request"].(map[string]any); ok {
		return requestFromMap(m)
	}
	return requestFromMap(result)
}

func requestsFromItems(raw []map[string]any) []Request {
	reqs := make([]Request, 0, len(raw))
	for _, m := range raw {
		reqs = append(reqs, requestFromMap(m))
	}
	return reqs
}

func addCustomFields(data url.Values, fields map[int]string) {
	for id, value := range fields {
		data.Set(fmt.Sprintf("Custom%d", id), value)
	}
}

// Attachments are serialized as three 1-indexed parameters per file, with
// the content base64-encoded.
func addFiles(data url.Values, files []File) {
	for i, f := range files {
		n := i + 1
		data.Set(fmt.Sprintf("File%d_sFilename", n), f.Filename)
		data.Set(fmt.Sprintf("File%d_sFileMimeType", n), f.MimeType)
		data.Set(fmt.Sprintf("File%d_bFileBody", n), base64.StdEncoding.EncodeToString(f.Content))
	}
}
