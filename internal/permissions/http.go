package permissions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/vietdv277/cfnperms/internal/logging"
	"github.com/vietdv277/cfnperms/pkg/provider"
	"github.com/vietdv277/cfnperms/pkg/types"
)

// DefaultBaseURL is the public CloudFormation resource schema location
const DefaultBaseURL = "https://cloudformation-schema.s3.us-west-2.amazonaws.com/resourcetype"

// HTTPSource downloads schemas from the public schema bucket
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

// HTTPOption customizes an HTTPSource
type HTTPOption func(*HTTPSource)

// WithBaseURL overrides the schema location
func WithBaseURL(baseURL string) HTTPOption {
	return func(s *HTTPSource) {
		if baseURL != "" {
			s.baseURL = baseURL
		}
	}
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		if client != nil {
			s.client = client
		}
	}
}

// WithTimeout bounds the whole request. Zero leaves the client without a
// timeout.
func WithTimeout(timeout time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		s.client.Timeout = timeout
	}
}

// NewHTTPSource creates an HTTPSource with the given options
func NewHTTPSource(opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		baseURL: DefaultBaseURL,
		client:  cleanhttp.DefaultClient(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

var _ provider.SchemaSource = (*HTTPSource)(nil)

// Name implements provider.SchemaSource
func (s *HTTPSource) Name() string {
	return provider.SourceHTTP
}

// BaseURL returns the schema location in use
func (s *HTTPSource) BaseURL() string {
	return s.baseURL
}

// FetchSchema implements provider.SchemaSource
func (s *HTTPSource) FetchSchema(ctx context.Context, resourceType string) (*types.Schema, error) {
	url := SchemaURL(s.baseURL, resourceType)
	logging.Debug().Str("url", url).Msg("fetching schema")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	logging.Debug().Str("url", url).Int("status", resp.StatusCode).Msg("schema response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		logging.Warn().Str("url", url).Int("status", resp.StatusCode).Msg("schema not served")
		return nil, &NetworkError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	schema, err := DecodeSchema(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}

	return schema, nil
}

// SchemaURL builds <base>/<formatted>.json for a resource type
func SchemaURL(baseURL, resourceType string) string {
	return strings.TrimRight(baseURL, "/") + "/" + FormatResourceType(resourceType) + ".json"
}

// DecodeSchema parses a schema document
func DecodeSchema(r io.Reader) (*types.Schema, error) {
	var schema types.Schema
	if err := json.NewDecoder(r).Decode(&schema); err != nil {
		return nil, fmt.Errorf("failed to decode schema: %w", err)
	}
	return &schema, nil
}

func statusText(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	return "Unknown Status"
}
