package requests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"finflow/src/utils"
)

// ExternalAPIService is a struct representing a configurable external service
type ExternalAPIService struct {
	Client *http.Client
}

// NewExternalAPIService creates a new instance of ExternalAPIService
func NewExternalAPIService(client *http.Client) *ExternalAPIService {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &ExternalAPIService{Client: client}
}

// makeRequest is a helper function to make HTTP requests, supporting optional query parameters
func (s *ExternalAPIService) makeRequest(ctx context.Context, method, endpoint, token string, params url.Values, body interface{}) (*http.Response, error) {
	// Convert params to query string
	if params != nil {
		endpoint = endpoint + "?" + params.Encode()
	}

	var err error
	var jsonBody []byte
	if body != nil {
		jsonBody, err = json.Marshal(body)
		if err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	return s.Client.Do(req)
}

// Get makes a GET request to the external service, accepting optional query parameters
func (s *ExternalAPIService) Get(ctx context.Context, endpoint, token string, params url.Values) (*http.Response, error) {
	return s.makeRequest(ctx, "GET", endpoint, token, params, nil)
}

// Post makes a POST request to the external service, accepting optional query parameters
func (s *ExternalAPIService) Post(ctx context.Context, endpoint, token string, params url.Values, body interface{}) (*http.Response, error) {
	return s.makeRequest(ctx, "POST", endpoint, token, params, body)
}

// Delete makes a DELETE request to the external service, accepting optional query parameters
func (s *ExternalAPIService) Delete(ctx context.Context, endpoint, token string, params url.Values) (*http.Response, error) {
	return s.makeRequest(ctx, "DELETE", endpoint, token, params, nil)
}

// PostWithHeaders makes a POST request with custom headers
func (s *ExternalAPIService) PostWithHeaders(ctx context.Context, endpoint, token string, body interface{}, headers map[string]string) (*http.Response, error) {
	var err error
	var jsonBody []byte
	if body != nil {
		jsonBody, err = json.Marshal(body)
		if err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode > http.StatusCreated {
		return nil, utils.NewHTTPError(resp.StatusCode, resp.Status)
	}
	return resp, nil
}
