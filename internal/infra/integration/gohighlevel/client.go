package gohighlevel

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

	"github.com/method3fitness/pike13-ghl-sync/internal/entity"
)

// Client talks to the GoHighLevel REST API v1.
type Client struct {
	baseURL    string
	apiKey     string
	locationID string
	http       *http.Client
}

func NewClient(baseURL, apiKey, locationID string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		locationID: locationID,
		http:       &http.Client{Timeout: 15 * time.Second},
	}
}

// LookupContactByEmail finds a contact by its email address. Returns
// (nil, nil) when no contact exists; that is a normal outcome, not an error.
func (c *Client) LookupContactByEmail(ctx context.Context, email string) (*entity.Contact, error) {
	lookupURL := fmt.Sprintf("%s/contacts/lookup?email=%s", c.baseURL, url.QueryEscape(email))

	req, err := http.NewRequestWithContext(ctx, "GET", lookupURL, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ghl lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ghl lookup rejected (status %d): %s", resp.StatusCode, string(body))
	}

	var response contactResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode ghl lookup response: %w", err)
	}
	if response.Contact == nil {
		return nil, nil
	}

	return &entity.Contact{
		ID:        response.Contact.ID,
		Email:     response.Contact.Email,
		FirstName: response.Contact.FirstName,
		LastName:  response.Contact.LastName,
		Tags:      response.Contact.Tags,
	}, nil
}

// CreateContact creates a new contact carrying the given tags and the
// days-since-visit custom field. Returns the new contact ID.
func (c *Client) CreateContact(ctx context.Context, input CreateContactInput) (string, error) {
	payload := createContactRequest{
		Email:      input.Email,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		LocationID: c.locationID,
		Tags:       dedupeTags(input.Tags),
		CustomField: map[string]string{
			CustomFieldDaysSinceVisit: strconv.Itoa(input.DaysSinceLastVisit),
		},
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal contact: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/contacts/", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("ghl create contact failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ghl create contact rejected (status %d): %s", resp.StatusCode, string(body))
	}

	var response contactResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode ghl create response: %w", err)
	}
	if response.Contact == nil {
		return "", fmt.Errorf("ghl create returned no contact")
	}

	return response.Contact.ID, nil
}

// UpdateDaysSinceVisit refreshes the days-since-last-visit custom field on
// an existing contact.
func (c *Client) UpdateDaysSinceVisit(ctx context.Context, contactID string, days int) error {
	payload := map[string]map[string]string{
		"customField": {CustomFieldDaysSinceVisit: strconv.Itoa(days)},
	}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal custom field: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "PUT", fmt.Sprintf("%s/contacts/%s", c.baseURL, contactID), bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ghl contact update failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("ghl contact update rejected (status %d): %s", resp.StatusCode, string(body))
	}

	return nil
}

// AddTags adds labels to an existing contact. The endpoint is additive, so
// the contact's other tags survive.
func (c *Client) AddTags(ctx context.Context, contactID string, tags []string) error {
	path := fmt.Sprintf("/contacts/%s/tags", contactID)
	return c.postTags(ctx, path, tags)
}

// RemoveTags removes labels from a contact via the tags.remove endpoint.
func (c *Client) RemoveTags(ctx context.Context, contactID string, tags []string) error {
	path := fmt.Sprintf("/contacts/%s/tags.remove", contactID)
	return c.postTags(ctx, path, tags)
}

func (c *Client) postTags(ctx context.Context, path string, tags []string) error {
	jsonBody, err := json.Marshal(tagsRequest{Tags: dedupeTags(tags)})
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ghl tag write failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("ghl tag write rejected (status %d): %s", resp.StatusCode, string(body))
	}

	return nil
}

// dedupeTags drops duplicate labels before sending. Some GHL tenants
// accumulate duplicates otherwise.
func dedupeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		key := strings.ToLower(strings.TrimSpace(t))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
