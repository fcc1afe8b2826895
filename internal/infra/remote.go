package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RemoteClient talks to the Supabase-style REST store used as the fleet's
// central database. Each call upserts one batch into one table; the
// merge-duplicates preference makes resubmitting already-synced records a
// no-op instead of a duplicate-key error.
type RemoteClient struct {
	baseURL     string
	apiKey      string
	bearerToken string
	httpClient  *http.Client
}

// NewRemoteClient builds a client for the given endpoint and static key pair.
func NewRemoteClient(baseURL, apiKey, bearerToken string) *RemoteClient {
	return &RemoteClient{
		baseURL:     baseURL,
		apiKey:      apiKey,
		bearerToken: bearerToken,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether a remote endpoint has been set up. Sync is a
// configuration error, not a network error, while this is false.
func (c *RemoteClient) Configured() bool { return c.baseURL != "" }

// UpsertBatch POSTs records into /rest/v1/{table}. Success or failure is
// reported at the batch level only.
func (c *RemoteClient) UpsertBatch(ctx context.Context, table string, records any) error {
	body, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("remote: marshal %s batch: %w", table, err)
	}

	url := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("remote: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	// Idempotent resubmission: records that already exist remotely are merged
	// by id instead of rejected.
	req.Header.Set("Prefer", "resolution=merge-duplicates")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("remote: %s batch unreachable: %w", table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("remote: %s batch rejected: status %d: %s", table, resp.StatusCode, snippet)
	}
	return nil
}
