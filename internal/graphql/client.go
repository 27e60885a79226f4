package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jamesprial/confcms-mcp/internal/config"
)

const defaultTimeout = 30 * time.Second

// Auth describes how the token is attached to each request: the value sent
// in Header is Prefix followed by the token.
type Auth struct {
	Header string
	Prefix string
}

// BearerAuth sends the token as "Authorization: Bearer <token>".
func BearerAuth() Auth {
	return Auth{Header: "Authorization", Prefix: "Bearer "}
}

// HeaderAuth sends the bare token in the named header, e.g. X-GQL-Token.
func HeaderAuth(header string) Auth {
	return Auth{Header: header}
}

// Option customises an HTTPClient.
type Option func(*HTTPClient)

// WithLogger sets the logger that receives remote error detail.
func WithLogger(l *log.Logger) Option {
	return func(c *HTTPClient) {
		if l != nil {
			c.logger = l
		}
	}
}

// HTTPClient is a concrete implementation of the Client interface that sends
// GraphQL requests over HTTP to a single endpoint.
type HTTPClient struct {
	httpClient *http.Client
	endpoint   string
	auth       Auth
	token      string
	logger     *log.Logger
}

// NewHTTPClient constructs an HTTPClient from the provided GraphQLConfig.
// It returns an error if cfg.URL or auth.Header is empty. When cfg.Timeout is
// zero or negative, a default timeout of 30 seconds is used. An empty token
// is accepted at construction time but will cause Execute to return
// ErrNotConfigured.
func NewHTTPClient(cfg config.GraphQLConfig, auth Auth, opts ...Option) (*HTTPClient, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("graphql: URL is required")
	}
	if auth.Header == "" {
		return nil, fmt.Errorf("graphql: auth header is required")
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if cfg.Timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &HTTPClient{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   cfg.URL,
		auth:       auth,
		token:      cfg.Token,
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// graphqlRequest is the JSON body shape for a GraphQL HTTP request.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphqlResponse is the JSON body shape for a GraphQL HTTP response.
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

// Execute sends a GraphQL query to the configured endpoint and returns the
// raw JSON bytes of the "data" field on success. Variables may be nil, in which case the "variables" key is omitted
// from the request body.
//
// Execute returns an error if:
//   - the client was constructed without a token (ErrNotConfigured)
//   - the HTTP request cannot be created or sent
//   - the server responds with HTTP 401 (ErrUnauthorized)
//   - the response carries a non-empty "errors" array (*RemoteAPIError)
//   - the server responds with any other non-2xx status code
//   - the response body cannot be decoded as JSON
//   - the response has no "data" or "data" is null (ErrNoData)
func (c *HTTPClient) Execute(ctx context.Context, query string, variables map[string]any) ([]byte, error) {
	if c.token == "" {
		return nil, ErrNotConfigured
	}

	bodyBytes, err := json.Marshal(graphqlRequest{
		Query:     query,
		Variables: variables,
	})
	if err != nil {
		return nil, fmt.Errorf("graphql: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("graphql: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(c.auth.Header, c.auth.Prefix+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graphql: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w (HTTP 401)", ErrUnauthorized)
	}

	// An error envelope is reported as such even on a 4xx/5xx status.
	var gqlResp graphqlResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&gqlResp)
	if decodeErr == nil && len(gqlResp.Errors) > 0 {
		return nil, c.remoteError(gqlResp.Errors)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("graphql: unexpected HTTP status %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("graphql: decode response: %w", decodeErr)
	}

	data := bytes.TrimSpace(gqlResp.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, ErrNoData
	}
	return data, nil
}

// remoteError logs the full error list under a fresh correlation id and
// returns an error that carries only the id.
func (c *HTTPClient) remoteError(errs []GraphQLError) error {
	id := uuid.NewString()
	detail, err := json.Marshal(errs)
	if err != nil {
		detail = []byte(fmt.Sprintf("%+v", errs))
	}
	c.logger.Printf("graphql: %s returned %d error(s) [ref %s]: %s", c.endpoint, len(errs), id, detail)
	return &RemoteAPIError{
		Endpoint:      c.endpoint,
		Count:         len(errs),
		CorrelationID: id,
	}
}
