package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

const apodPath = "/planetary/apod"

// GetAPOD fetches APOD entries for the given query. The endpoint returns
// a JSON object for single-date queries and a JSON array for range and
// count queries; both shapes are normalized to a slice. Some upstream
// failures arrive as a 200 with an error-shaped body, which is surfaced
// as an *APIError.
func (c *Client) GetAPOD(ctx context.Context, query url.Values) ([]APODEntry, error) {
	var raw json.RawMessage
	if err := c.Do(ctx, http.MethodGet, apodPath, query, &raw); err != nil {
		return nil, err
	}
	return decodeAPODBody(raw)
}

func decodeAPODBody(raw json.RawMessage) ([]APODEntry, error) {
	var many []APODEntry
	if err := json.Unmarshal(raw, &many); err == nil {
		return many, nil
	}

	var probe struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &probe); err == nil && probe.Msg != "" {
		return nil, &APIError{StatusCode: probe.Code, Message: probe.Msg}
	}

	var one APODEntry
	if err := json.Unmarshal(raw, &one); err != nil {
		return nil, err
	}
	return []APODEntry{one}, nil
}
