// Package client provides a programmatic client for the cereal HTTP API
// and the interactive console menu built on top of it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"cereal-api/internal/model"
)

// API is the surface the console menu drives. Implementations talk to a
// running server; tests substitute an in-process fake.
type API interface {
	// Health reports whether the server is reachable and serving.
	Health(ctx context.Context) error

	// List retrieves cereals with the optional filter and sort parameters.
	List(ctx context.Context, column, value, operator, sortBy string) ([]model.Cereal, error)

	// Get retrieves a single cereal by identifier.
	Get(ctx context.Context, id int) (*model.Cereal, error)

	// CreateOrUpdate inserts or overwrites a cereal record.
	CreateOrUpdate(ctx context.Context, req *model.CerealRequest) (*model.Cereal, error)

	// Delete removes a cereal by name.
	Delete(ctx context.Context, name string) error

	// Register creates the privileged credential.
	Register(ctx context.Context, username, password string) error
}

// HTTPClient implements API over HTTP.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient creates an API client for the given base URL,
// e.g. "http://127.0.0.1:8080".
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// apiError decodes the server's error body into a readable error.
func apiError(resp *http.Response) error {
	var body model.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, body.Error)
	}
	return fmt.Errorf("HTTP %d", resp.StatusCode)
}

// Health checks the /health endpoint.
func (c *HTTPClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return nil
}

// List retrieves cereals with the optional filter and sort parameters.
func (c *HTTPClient) List(ctx context.Context, column, value, operator, sortBy string) ([]model.Cereal, error) {
	params := url.Values{}
	if column != "" {
		params.Set("column", column)
	}
	if value != "" {
		params.Set("value", value)
	}
	if operator != "" {
		params.Set("operator", operator)
	}
	if sortBy != "" {
		params.Set("sort_by", sortBy)
	}

	endpoint := c.baseURL + "/cereals"
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cereals: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var cereals []model.Cereal
	if err := json.NewDecoder(resp.Body).Decode(&cereals); err != nil {
		return nil, fmt.Errorf("failed to decode cereals: %w", err)
	}
	return cereals, nil
}

// Get retrieves a single cereal by identifier.
func (c *HTTPClient) Get(ctx context.Context, id int) (*model.Cereal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/cereals/"+strconv.Itoa(id), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cereal: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var cereal model.Cereal
	if err := json.NewDecoder(resp.Body).Decode(&cereal); err != nil {
		return nil, fmt.Errorf("failed to decode cereal: %w", err)
	}
	return &cereal, nil
}

// CreateOrUpdate inserts or overwrites a cereal record.
func (c *HTTPClient) CreateOrUpdate(ctx context.Context, payload *model.CerealRequest) (*model.Cereal, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cereal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/cereals", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to save cereal: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var cereal model.Cereal
	if err := json.NewDecoder(resp.Body).Decode(&cereal); err != nil {
		return nil, fmt.Errorf("failed to decode cereal: %w", err)
	}
	return &cereal, nil
}

// Delete removes a cereal by name.
func (c *HTTPClient) Delete(ctx context.Context, name string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.baseURL+"/cereals/"+url.PathEscape(name), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete cereal: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return nil
}

// Register creates the privileged credential.
func (c *HTTPClient) Register(ctx context.Context, username, password string) error {
	body, err := json.Marshal(model.RegisterRequest{Username: username, Password: password})
	if err != nil {
		return fmt.Errorf("failed to encode registration: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/register", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to register: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return nil
}
