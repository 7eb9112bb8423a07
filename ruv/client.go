// Package ruv is a client for the RÚV catalog API.
//
// The web player talks to a GraphQL endpoint through persisted queries: a
// request names the operation and the hash of a query the server already
// knows, and passes the variables as JSON in the query string.
package ruv

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jofsarpur/jofsarpur/constant"
	"github.com/jofsarpur/jofsarpur/log"
	"github.com/jofsarpur/jofsarpur/network"
	"github.com/jofsarpur/jofsarpur/util"
)

// Options configures a Client. Zero values select the defaults.
type Options struct {
	// BaseURL is the GraphQL endpoint.
	BaseURL string
	// Timeout bounds a single request when HTTPClient is nil.
	Timeout time.Duration
	// HTTPClient replaces the default client.
	HTTPClient *http.Client
	// HighestVariant resolves HLS master playlists to their best variant.
	HighestVariant bool
}

// Client fetches episode lists and stream locations.
type Client struct {
	http           *http.Client
	baseURL        string
	highestVariant bool
}

// New returns a client configured with opts.
func New(opts Options) *Client {
	c := &Client{
		http:           opts.HTTPClient,
		baseURL:        opts.BaseURL,
		highestVariant: opts.HighestVariant,
	}
	if c.http == nil {
		c.http = network.New(opts.Timeout)
	}
	if c.baseURL == "" {
		c.baseURL = constant.RUVGraphQL
	}
	return c
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// query runs a persisted query and decodes its data into out.
func (c *Client) query(ctx context.Context, operation, hash string, variables any, out any) error {
	endpoint, err := c.endpoint(operation, hash, variables)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &RemoteError{Op: operation, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	log.Debugf("GET %s", endpoint)
	resp, err := c.http.Do(req)
	if err != nil {
		return &RemoteError{Op: operation, Err: err}
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RemoteError{Op: operation, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RemoteError{Op: operation, Err: err}
	}

	var envelope graphqlResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return &ParseError{Op: operation, Reason: "decode response", Err: err}
	}

	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		if len(envelope.Errors) > 0 {
			messages := make([]string, len(envelope.Errors))
			for i, e := range envelope.Errors {
				messages[i] = e.Message
			}
			return &RemoteError{Op: operation, Messages: messages}
		}
		return &ParseError{Op: operation, Reason: "response has no data"}
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return &ParseError{Op: operation, Reason: "decode data", Err: err}
	}
	return nil
}

func (c *Client) endpoint(operation, hash string, variables any) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse api url: %w", err)
	}

	vars, err := json.Marshal(variables)
	if err != nil {
		return "", fmt.Errorf("encode variables: %w", err)
	}

	extensions, err := json.Marshal(map[string]any{
		"persistedQuery": map[string]any{
			"version":    1,
			"sha256Hash": hash,
		},
	})
	if err != nil {
		return "", fmt.Errorf("encode extensions: %w", err)
	}

	q := u.Query()
	q.Set("operationName", operation)
	q.Set("variables", string(vars))
	q.Set("extensions", string(extensions))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// idValue sends numeric ids as JSON numbers, which is what the API expects for programs.
func idValue(id string) any {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return n
	}
	return id
}

// flexString accepts both JSON strings and numbers.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}
