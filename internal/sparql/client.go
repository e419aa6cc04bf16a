package sparql

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/semanticmatter/sparql-mcp-ontology/internal/rdf"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "sparql-mcp-ontology"

	resultsContentType = "application/sparql-results+json"

	// connectivityProbe is a minimal query every SPARQL 1.1 endpoint answers.
	connectivityProbe = "SELECT (1 AS ?ok) WHERE {}"
)

var (
	tracerOnce sync.Once
	pkgTracer  trace.Tracer
)

func tracer() trace.Tracer {
	tracerOnce.Do(func() {
		pkgTracer = otel.Tracer("sparql-mcp-ontology/internal/sparql")
	})
	return pkgTracer
}

// ClientConfig configures a Client. Credentials and endpoint identity are
// always passed explicitly here; the client keeps no ambient state.
type ClientConfig struct {
	// Endpoint is the SPARQL query endpoint URL. Required.
	Endpoint string

	// Username and Password enable HTTP Basic authentication when non-empty.
	Username string
	Password string

	// Timeout bounds each query round trip. Default: 30s.
	Timeout time.Duration

	// UserAgent overrides the User-Agent header. Default: sparql-mcp-ontology.
	UserAgent string

	// HTTPClient overrides the underlying HTTP client, primarily for tests.
	HTTPClient *http.Client
}

func (c *ClientConfig) applyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
}

// Client speaks the SPARQL 1.1 Protocol over HTTP: queries are sent as
// form-encoded POST requests and results decoded from the standard JSON
// results representation.
type Client struct {
	cfg  ClientConfig
	http *http.Client
}

// NewClient validates the configuration and returns a ready client.
func NewClient(cfg ClientConfig) (*Client, error) {
	cfg.applyDefaults()
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("sparql: endpoint is required")
	}
	u, err := url.Parse(cfg.Endpoint)
	if err != nil || !u.IsAbs() {
		return nil, fmt.Errorf("sparql: invalid endpoint URL %q", cfg.Endpoint)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{cfg: cfg, http: httpClient}, nil
}

// ExecuteSelect implements Service.
func (c *Client) ExecuteSelect(ctx context.Context, query, graphURI string) (rows []Binding, err error) {
	start := time.Now()
	defer func() {
		queryDuration.Observe(time.Since(start).Seconds())
		queriesTotal.WithLabelValues(classifyOutcome(err)).Inc()
	}()

	ctx, span := tracer().Start(ctx, "sparql.ExecuteSelect",
		trace.WithAttributes(
			attribute.String("sparql.endpoint", c.cfg.Endpoint),
			attribute.String("sparql.graph", graphURI),
		),
	)
	defer span.End()

	slog.Debug("executing sparql query",
		"endpoint", c.cfg.Endpoint,
		"graph", graphURI,
		"bytes", len(query))

	body, status, err := c.post(ctx, query)
	if err != nil {
		qerr := &QueryError{Endpoint: c.cfg.Endpoint, Graph: graphURI, Status: status, Err: err}
		span.RecordError(qerr)
		span.SetStatus(codes.Error, "query execution failed")
		return nil, qerr
	}

	rows, err = decodeSelectResults(body)
	if err != nil {
		qerr := &QueryError{Endpoint: c.cfg.Endpoint, Graph: graphURI, Status: status, Err: err}
		span.RecordError(qerr)
		span.SetStatus(codes.Error, "response decoding failed")
		return nil, qerr
	}

	span.SetAttributes(attribute.Int("sparql.rows", len(rows)))
	span.SetStatus(codes.Ok, "query executed")
	return rows, nil
}

// post sends the query and returns the response body. The returned status is
// 0 when no HTTP response was received.
func (c *Client) post(ctx context.Context, query string) ([]byte, int, error) {
	form := url.Values{"query": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, 0, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", resultsContentType)
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if c.cfg.Username != "" {
		req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, fmt.Errorf("endpoint returned %s: %s", resp.Status, truncate(string(body), 256))
	}
	return body, resp.StatusCode, nil
}

// VerifyConnectivity implements Service.
func (c *Client) VerifyConnectivity(ctx context.Context) error {
	if _, err := c.ExecuteSelect(ctx, connectivityProbe, ""); err != nil {
		return fmt.Errorf("verifying endpoint connectivity: %w", err)
	}
	return nil
}

// Endpoint implements Service.
func (c *Client) Endpoint() string { return c.cfg.Endpoint }

// Close implements Service.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// selectResponse mirrors the SPARQL 1.1 Query Results JSON format.
type selectResponse struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []map[string]jsonTerm `json:"bindings"`
	} `json:"results"`
}

// jsonTerm is one RDF term in the results JSON encoding.
type jsonTerm struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Lang     string `json:"xml:lang,omitempty"`
	Datatype string `json:"datatype,omitempty"`
}

func (jt jsonTerm) toTerm() (rdf.Term, error) {
	switch jt.Type {
	case "uri":
		return rdf.NewIRI(jt.Value), nil
	case "literal":
		if jt.Lang != "" {
			return rdf.NewLangLiteral(jt.Value, jt.Lang), nil
		}
		if jt.Datatype != "" {
			return rdf.NewTypedLiteral(jt.Value, jt.Datatype), nil
		}
		return rdf.NewLiteral(jt.Value), nil
	case "typed-literal":
		// Legacy alias some endpoints still emit.
		return rdf.NewTypedLiteral(jt.Value, jt.Datatype), nil
	case "bnode":
		return rdf.NewBlank(jt.Value), nil
	default:
		return rdf.Term{}, fmt.Errorf("unknown term type %q", jt.Type)
	}
}

func decodeSelectResults(body []byte) ([]Binding, error) {
	var parsed selectResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding results: %w", err)
	}
	rows := make([]Binding, 0, len(parsed.Results.Bindings))
	for _, raw := range parsed.Results.Bindings {
		row := make(Binding, len(raw))
		for name, jt := range raw {
			term, err := jt.toTerm()
			if err != nil {
				return nil, fmt.Errorf("decoding binding %q: %w", name, err)
			}
			row[name] = term
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
