package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"finflow/src/config"
	"finflow/src/utils/requests"
)

type GeminiServiceClientI interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type GeminiServiceClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
	APIKey  string
	Model   string
}

// NewClient creates a new instance of GeminiServiceClient
func NewClient(cfg *config.Config) (*GeminiServiceClient, error) {
	api := requests.NewExternalAPIService(nil)
	return &GeminiServiceClient{
		API:     api,
		BaseURL: cfg.ExternalClients.Gemini.BaseURL,
		APIKey:  cfg.ExternalClients.Gemini.APIKey,
		Model:   cfg.ExternalClients.Gemini.Model,
	}, nil
}

// GenerateContent sends a single-prompt generation request and returns the
// model's text response. No retries are performed; callers treat a failure
// as "skip".
func (c *GeminiServiceClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.BaseURL, c.Model)

	params := url.Values{}
	params.Add("key", c.APIKey)

	body := GenerateContentRequest{
		Contents: []Content{{Parts: []Part{{Text: prompt}}}},
	}

	resp, err := c.API.Post(ctx, endpoint, "", params, body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini responded with status %d", resp.StatusCode)
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var generateResponse GenerateContentResponse
	err = json.Unmarshal(responseBody, &generateResponse)
	if err != nil {
		return "", err
	}

	return generateResponse.Text(), nil
}
