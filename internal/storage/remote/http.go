package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ledger-zero/backend/internal/rpc"
)

// HTTPTransport posts requests to the /rpc endpoint of a storage server.
type HTTPTransport struct {
	url    string
	client *http.Client
}

// NewHTTPTransport returns a transport for the storage server at baseURL.
// If client is nil, http.DefaultClient is used.
func NewHTTPTransport(baseURL string, client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}

	return &HTTPTransport{
		url:    strings.TrimSuffix(baseURL, "/") + "/rpc",
		client: client,
	}
}

func (t *HTTPTransport) Call(ctx context.Context, request rpc.Request) (rpc.Response, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return rpc.Response{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		return rpc.Response{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := t.client.Do(req)
	if err != nil {
		return rpc.Response{}, err
	}
	defer res.Body.Close()

	// Bad requests are answered with a response carrying the error
	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusBadRequest {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return rpc.Response{}, fmt.Errorf("unexpected status %s: %s", res.Status, bytes.TrimSpace(msg))
	}

	var response rpc.Response
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return rpc.Response{}, fmt.Errorf("decoding response: %w", err)
	}

	return response, nil
}

// Close closes idle connections of the client.
func (t *HTTPTransport) Close() error {
	t.client.CloseIdleConnections()
	return nil
}
