package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client calls the text-generation service that writes help messages and
// result summaries.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient constructs an assistant client. apiKey is optional.
func NewClient(baseURL, apiKey string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("assistant: empty base url")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

type explainRequest struct {
	IssueDescription string `json:"issueDescription"`
}

type explainResponse struct {
	HelpMessage string `json:"helpMessage"`
}

type summarizeRequest struct {
	CurrentCompany      string  `json:"currentCompany"`
	BestCompany         string  `json:"bestCompany"`
	EstimatedSavings    float64 `json:"estimatedSavings"`
	TotalConsumptionKWh float64 `json:"totalConsumptionKwh"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
}

// ExplainIssue asks for a step-by-step help message for a failed upload.
func (c *Client) ExplainIssue(ctx context.Context, issueDescription string) (string, error) {
	if issueDescription == "" {
		return "", errors.New("assistant: empty issue description")
	}
	var resp explainResponse
	if err := c.doJSON(ctx, http.MethodPost, "/explain-issue", explainRequest{IssueDescription: issueDescription}, &resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.HelpMessage), nil
}

// SummarizeResult asks for a short summary of the best option and savings.
func (c *Client) SummarizeResult(ctx context.Context, currentPlanName, bestPlanName string, estimatedSavings, totalConsumptionKWh float64) (string, error) {
	body := summarizeRequest{
		CurrentCompany:      currentPlanName,
		BestCompany:         bestPlanName,
		EstimatedSavings:    estimatedSavings,
		TotalConsumptionKWh: totalConsumptionKWh,
	}
	var resp summarizeResponse
	if err := c.doJSON(ctx, http.MethodPost, "/summarize-result", body, &resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Summary), nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("assistant: http %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
