package pike13

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/method3fitness/pike13-ghl-sync/internal/entity"
)

// Client talks to the Pike13 Reporting API v3.
type Client struct {
	baseURL     string
	accessToken string
	http        *http.Client
}

func NewClient(baseURL, accessToken string) *Client {
	return &Client{
		baseURL:     baseURL,
		accessToken: accessToken,
		http:        &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchClientReportPage runs one page of the client report query.
func (c *Client) FetchClientReportPage(ctx context.Context, query ReportQuery) (*ReportPage, error) {
	return c.runReportQuery(ctx, "/reports/clients/queries", query)
}

// FetchPlanStates queries the plan report for a single person and returns
// the normalized flag set for every plan they hold. Zero rows means the
// client holds no plans at all.
func (c *Client) FetchPlanStates(ctx context.Context, personID string) ([]entity.PlanState, error) {
	query := ReportQuery{
		Fields: PlanReportFields,
		Filter: []FilterPredicate{
			{Field: "person_id", Op: "eq", Value: personID},
		},
		Limit: 100,
	}

	page, err := c.runReportQuery(ctx, "/reports/plans/queries", query)
	if err != nil {
		return nil, err
	}

	plans := make([]entity.PlanState, 0, len(page.Rows))
	for _, row := range page.Rows {
		if len(row) != len(PlanReportFields) {
			return nil, fmt.Errorf("plan row has %d fields, expected %d", len(row), len(PlanReportFields))
		}
		plans = append(plans, entity.PlanState{
			Available: entity.TruthyFlag(row[1]),
			OnHold:    entity.TruthyFlag(row[2]),
			Canceled:  entity.TruthyFlag(row[3]),
			Ended:     entity.TruthyFlag(row[4]),
			Exhausted: entity.TruthyFlag(row[5]),
		})
	}

	return plans, nil
}

func (c *Client) runReportQuery(ctx context.Context, path string, query ReportQuery) (*ReportPage, error) {
	payload := reportQueryRequest{
		Fields: query.Fields,
		Filter: query.Filter,
		Page: reportQueryPage{
			Limit:         query.Limit,
			StartingAfter: query.StartingAfter,
		},
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pike13 request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("pike13 report query rejected (status %d): %s", resp.StatusCode, string(body))
	}

	var page ReportPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode pike13 response: %w", err)
	}

	return &page, nil
}

// setHeaders centralizes the required headers.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.accessToken))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
