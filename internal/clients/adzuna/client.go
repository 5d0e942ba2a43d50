package adzuna

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"golang.org/x/time/rate"
	"io"
	"net/http"
)

type searchResponse struct {
	Results []Posting `json:"results"`
	Count   int       `json:"count"`
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the Adzuna public search API. Credentials are mandatory;
// the country code selects the listing market ("us", "gb", "fr", ...).
type Client struct {
	appID       string
	appKey      string
	country     string
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
}

func NewClient(appID, appKey, country string) *Client {
	return &Client{
		appID:      appID,
		appKey:     appKey,
		country:    country,
		httpClient: &http.Client{},
	}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

func (c *Client) Search(ctx context.Context, parameters SearchParameters) ([]Posting, error) {

	if c.appID == "" || c.appKey == "" {
		return nil, fmt.Errorf("adzuna credentials are not set")
	}

	if err := parameters.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	apiURL := fmt.Sprintf("https://api.adzuna.com/v1/api/jobs/%s/search/%d", c.country, parameters.Page)
	params := parameters.ToUrlParams()
	params.Set("app_id", c.appID)
	params.Set("app_key", c.appKey)

	body, err := c.sendRequest(ctx, "GET", apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var response searchResponse
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&response); err != nil {
		return nil, fmt.Errorf("error decoding JSON response: %v", err)
	}

	return response.Results, nil
}

func (c *Client) sendRequest(ctx context.Context, method string, url string, body io.Reader) ([]byte, error) {

	if c.rateLimiter != nil {
		err := c.rateLimiter.Wait(ctx)
		if err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp)
}

func (c *Client) handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %v, body: %v", resp.StatusCode, string(body))
	}

	return body, nil
}
