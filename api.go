package main

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
)

// apiClient talks to the catalog service. Request de-duplication and
// retries are out of scope; every call is a single round trip.
type apiClient struct {
	baseURL string
	http    *http.Client
	token   func() string
}

func newAPIClient(baseURL string, token func() string) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		token:   token,
	}
}

type productsResponse struct {
	Products []productDTO `json:"products"`
	Total    int          `json:"total"`
	Skip     int          `json:"skip"`
	Limit    int          `json:"limit"`
}

type loginResponse struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	Token         string `json:"token,omitempty"`
	AccessToken   string `json:"accessToken,omitempty"`
	RefreshToken  string `json:"refreshToken,omitempty"`
	ExpiresInMins int    `json:"expiresInMins,omitempty"`
}

type listParams struct {
	Query  string
	Limit  int
	Skip   int
	Select string
	Sort   *sortState
}

// apiError carries the human-readable message extracted from an error
// response body.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed: %d", e.Status)
}

func decodeAPIError(status int, body []byte) error {
	trimmed := strings.TrimSpace(string(body))
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && strings.TrimSpace(payload.Message) != "" {
		return &apiError{Status: status, Message: strings.TrimSpace(payload.Message)}
	}
	if trimmed != "" && !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "<") {
		return &apiError{Status: status, Message: trimmed}
	}
	return &apiError{Status: status}
}

func (c *apiClient) do(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != nil {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ListProducts fetches one page. A non-empty query routes to the search
// endpoint.
func (c *apiClient) ListProducts(ctx context.Context, params listParams) (productsResponse, error) {
	query := url.Values{}
	trimmed := strings.TrimSpace(params.Query)
	path := "/products"
	if trimmed != "" {
		path = "/products/search"
		query.Set("q", trimmed)
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	query.Set("skip", strconv.Itoa(params.Skip))
	if params.Select != "" {
		query.Set("select", params.Select)
	}
	if params.Sort != nil {
		query.Set("sortBy", remoteSortField(params.Sort.Key))
		query.Set("order", string(params.Sort.Direction))
	}
	var out productsResponse
	if err := c.do(ctx, http.MethodGet, path, query, nil, &out); err != nil {
		return productsResponse{}, err
	}
	return out, nil
}

func (c *apiClient) CreateProduct(ctx context.Context, payload draftPayload) (productDTO, error) {
	body := map[string]any{
		"title":  payload.Name,
		"price":  payload.Price,
		"brand":  payload.Vendor,
		"sku":    payload.SKU,
		"stock":  1,
		"rating": 0,
	}
	var out productDTO
	if err := c.do(ctx, http.MethodPost, "/products/add", nil, body, &out); err != nil {
		return productDTO{}, err
	}
	return out, nil
}

// UpdateProduct sends only the changed fields, under their remote names.
func (c *apiClient) UpdateProduct(ctx context.Context, id string, changes productPatch) (productDTO, error) {
	body := map[string]any{}
	if changes.Name != nil {
		body["title"] = *changes.Name
	}
	if changes.Vendor != nil {
		body["brand"] = *changes.Vendor
	}
	if changes.SKU != nil {
		body["sku"] = *changes.SKU
	}
	if changes.Price != nil {
		body["price"] = *changes.Price
	}
	var out productDTO
	if err := c.do(ctx, http.MethodPut, "/products/"+url.PathEscape(id), nil, body, &out); err != nil {
		return productDTO{}, err
	}
	return out, nil
}

func (c *apiClient) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil, nil)
}

func (c *apiClient) Login(ctx context.Context, username, password string, expiresInMins int) (loginResponse, error) {
	body := map[string]any{
		"username":      username,
		"password":      password,
		"expiresInMins": expiresInMins,
	}
	var out loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &out); err != nil {
		return loginResponse{}, err
	}
	return out, nil
}

// humanizeError turns any failure into the single message shown to the
// user.
func humanizeError(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if apiErr, ok := err.(*apiError); ok {
		return apiErr.Error()
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallback
}
