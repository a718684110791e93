package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/cayleygraph/quad"
)

// maxResponseSize limits response bodies read into memory. CONSTRUCT results
// for a single subject are small; anything near this size is a store bug.
const maxResponseSize = 32 * 1024 * 1024 // 32MB

// errorSnippetSize limits how much of an error response body is kept.
const errorSnippetSize = 1024

// Content types of the store's HTTP contract. Exported because operation
// records carry the exact headers that were sent.
const (
	ContentTypeSPARQLUpdate = "application/sparql-update"
	ContentTypeNTriples     = "application/n-triples"
)

// Client executes requests against the three store endpoints.
type Client struct {
	queryURL   string
	updateURL  string
	gspURL     string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(client *Client) {
		client.logger = logger
	}
}

// New creates a store client for the given endpoint URLs.
func New(queryURL, updateURL, gspURL string, opts ...Option) *Client {
	c := &Client{
		queryURL:  queryURL,
		updateURL: updateURL,
		gspURL:    gspURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Update sends a SPARQL Update body to the update endpoint.
func (c *Client) Update(ctx context.Context, body string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.updateURL, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("build update request: %w", err)
	}
	req.Header.Set("Content-Type", ContentTypeSPARQLUpdate)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute update request: %w", err)
	}
	defer resp.Body.Close()

	return c.checkStatus(resp)
}

// Query runs a SPARQL query and returns the raw N-Triples response text.
func (c *Client) Query(ctx context.Context, sparql string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.queryURL, nil)
	if err != nil {
		return "", fmt.Errorf("build query request: %w", err)
	}
	q := req.URL.Query()
	q.Set("query", sparql)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", ContentTypeNTriples)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute query request: %w", err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return "", err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("read query response: %w", err)
	}
	return string(data), nil
}

// GSPGet fetches the content of a named graph.
func (c *Client) GSPGet(ctx context.Context, graph quad.IRI) (string, error) {
	req, err := c.gspRequest(ctx, http.MethodGet, graph, "")
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", ContentTypeNTriples)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute graph store GET: %w", err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return "", err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("read graph store response: %w", err)
	}
	return string(data), nil
}

// GSPPost appends N-Triples content to a named graph.
func (c *Client) GSPPost(ctx context.Context, graph quad.IRI, body string) error {
	return c.gspWrite(ctx, http.MethodPost, graph, body)
}

// GSPPut replaces the content of a named graph.
func (c *Client) GSPPut(ctx context.Context, graph quad.IRI, body string) error {
	return c.gspWrite(ctx, http.MethodPut, graph, body)
}

// GSPDelete removes a named graph. A 404 is success: the graph already being
// absent satisfies the delete's post-condition.
func (c *Client) GSPDelete(ctx context.Context, graph quad.IRI) error {
	req, err := c.gspRequest(ctx, http.MethodDelete, graph, "")
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute graph store DELETE: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	return c.checkStatus(resp)
}

// Reset wipes the store with DROP ALL and loads the seed file into the
// default graph. Called once before generation starts, never per operation.
func (c *Client) Reset(ctx context.Context, seedFile string) error {
	if err := c.Update(ctx, "DROP ALL"); err != nil {
		return fmt.Errorf("drop all graphs: %w", err)
	}

	f, err := os.Open(seedFile)
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	// The GSP selects the default graph with a bare "default" parameter,
	// not graph=<iri>.
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.gspURL+"?default", f)
	if err != nil {
		return fmt.Errorf("build seed load request: %w", err)
	}
	req.Header.Set("Content-Type", ContentTypeNTriples)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("load seed file: %w", err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return fmt.Errorf("load seed file: %w", err)
	}

	c.logger.Info("Store reset complete", slog.String("seed_file", seedFile))
	return nil
}

// gspRequest builds a GSP request scoped to a named graph.
func (c *Client) gspRequest(ctx context.Context, method string, graph quad.IRI, body string) (*http.Request, error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.gspURL, reader)
	if err != nil {
		return nil, fmt.Errorf("build graph store %s request: %w", method, err)
	}
	req.URL.RawQuery = url.Values{"graph": {string(graph)}}.Encode()
	return req, nil
}

func (c *Client) gspWrite(ctx context.Context, method string, graph quad.IRI, body string) error {
	req, err := c.gspRequest(ctx, method, graph, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", ContentTypeNTriples)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute graph store %s: %w", method, err)
	}
	defer resp.Body.Close()

	return c.checkStatus(resp)
}

// checkStatus converts a non-2xx response into a StatusError carrying a
// snippet of the response body.
func (c *Client) checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorSnippetSize))
	return &StatusError{
		Method: resp.Request.Method,
		URL:    resp.Request.URL.String(),
		Status: resp.StatusCode,
		Body:   strings.TrimSpace(string(snippet)),
	}
}
