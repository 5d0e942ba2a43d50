package remotive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"golang.org/x/time/rate"
	"io"
	"net/http"
)

type getJobsResponse struct {
	Jobs []Posting `json:"jobs"`
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
}

func NewClient() *Client {
	return &Client{httpClient: &http.Client{}}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

func (c *Client) GetJobs(ctx context.Context, parameters SearchParameters) ([]Posting, error) {

	if err := parameters.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	apiURL := "https://remotive.com/api/remote-jobs"
	params := parameters.ToUrlParams()

	body, err := c.sendRequest(ctx, "GET", apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var jobsResponse getJobsResponse
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&jobsResponse); err != nil {
		return nil, fmt.Errorf("error decoding JSON response: %v", err)
	}

	return jobsResponse.Jobs, nil
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
