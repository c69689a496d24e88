package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// defaultTimeout bounds each outbound provider call. There are no retries
// and no circuit breaking; a slow provider surfaces as a transport error.
const defaultTimeout = 30 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}

// postJSON issues exactly one JSON POST and folds the outcome into a Result.
func postJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, body any) Result {
	payload, err := json.Marshal(body)
	if err != nil {
		return TransportError(fmt.Errorf("marshaling request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return TransportError(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return TransportError(fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return TransportError(fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ProviderError(resp.StatusCode, respBody)
	}
	return OK(decodeBody(respBody))
}

// decodeBody parses a provider response as JSON, falling back to the raw
// string for non-JSON bodies.
func decodeBody(b []byte) any {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return string(b)
	}
	return v
}
