// Package client talks to the admin API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"blackpiston/internal/domain/models"
	"blackpiston/internal/services"
)

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
	// Token is sent as a bearer token once set.
	Token string
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// ListingQuery is the admin listings query string.
type ListingQuery struct {
	Status   string
	Type     string
	Search   string
	Sort     string
	Dir      string
	Page     int
	PageSize int
}

func (q ListingQuery) values() url.Values {
	v := url.Values{}
	set := func(k, s string) {
		if s != "" {
			v.Set(k, s)
		}
	}
	set("status", q.Status)
	set("type", q.Type)
	set("search", q.Search)
	set("sort", q.Sort)
	set("dir", q.Dir)
	if q.PageSize > 0 {
		v.Set("page", strconv.Itoa(q.Page))
		v.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	return v
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	}
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	if raw, ok := out.(*[]byte); ok {
		*raw, err = io.ReadAll(resp.Body)
		return err
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// SignIn runs login and the second factor and keeps the session token.
func (c *Client) SignIn(ctx context.Context, email, password, code string) error {
	var login services.LoginResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/admin/login", nil, body, &login); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	var verified services.LoginResult
	body = map[string]string{"code": code, "token": login.Token}
	if err := c.do(ctx, http.MethodPost, "/api/admin/verify-2fa", nil, body, &verified); err != nil {
		return fmt.Errorf("verify 2fa: %w", err)
	}
	c.Token = verified.Token
	return nil
}

func (c *Client) Listings(ctx context.Context, q ListingQuery) (services.Result[models.Listing], error) {
	var res services.Result[models.Listing]
	err := c.do(ctx, http.MethodGet, "/api/admin/listings", q.values(), nil, &res)
	return res, err
}

func (c *Client) BulkListings(ctx context.Context, req services.BulkRequest) (services.BulkResult, error) {
	var res services.BulkResult
	err := c.do(ctx, http.MethodPost, "/api/admin/listings/bulk-action", nil, req, &res)
	return res, err
}

func (c *Client) BulkUsers(ctx context.Context, req services.BulkRequest) (services.BulkResult, error) {
	var res services.BulkResult
	err := c.do(ctx, http.MethodPost, "/api/admin/users/bulk-action", nil, req, &res)
	return res, err
}

// Export downloads resource (listings or users) in format, filtered by query.
func (c *Client) Export(ctx context.Context, resource, format string, query url.Values) ([]byte, error) {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("format", format)
	var body []byte
	err := c.do(ctx, http.MethodGet, "/api/admin/"+resource+"/export", q, nil, &body)
	return body, err
}
