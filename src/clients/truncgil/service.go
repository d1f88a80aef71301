package truncgil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"finflow/src/config"
	"finflow/src/utils/requests"
)

type TruncgilServiceClientI interface {
	GetToday(ctx context.Context) (*TodayResponse, error)
}

type TruncgilServiceClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
}

// NewClient creates a new instance of TruncgilServiceClient
func NewClient(cfg *config.Config) (*TruncgilServiceClient, error) {
	api := requests.NewExternalAPIService(nil)
	return &TruncgilServiceClient{
		API:     api,
		BaseURL: cfg.ExternalClients.Truncgil.BaseURL,
	}, nil
}

// GetToday fetches the current market quote document for all symbols
func (c *TruncgilServiceClient) GetToday(ctx context.Context) (*TodayResponse, error) {
	endpoint := fmt.Sprintf("%s/today.json", c.BaseURL)

	resp, err := c.API.Get(ctx, endpoint, "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("price feed responded with status %d", resp.StatusCode)
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var todayResponse TodayResponse
	err = json.Unmarshal(responseBody, &todayResponse)
	if err != nil {
		return nil, err
	}

	return &todayResponse, nil
}
