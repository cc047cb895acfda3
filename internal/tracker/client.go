package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

// DefaultBaseURL is the hosted W&B API.
const DefaultBaseURL = "https://api.wandb.ai"

const (
	defaultPageSize   = 50
	defaultMaxRetries = 3
	defaultBackoff    = 500 * time.Millisecond
)

const runsQuery = `query Runs($project: String!, $entity: String!, $cursor: String, $perPage: Int, $filters: JSONString) {
  project(name: $project, entityName: $entity) {
    runs(filters: $filters, after: $cursor, first: $perPage) {
      edges {
        node {
          name
          displayName
          config
          summaryMetrics
        }
        cursor
      }
      pageInfo {
        endCursor
        hasNextPage
      }
    }
  }
}`

// Client queries the W&B GraphQL API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	pageSize   int
	maxRetries uint64
	backoff    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the transport.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

// WithRetries sets the retry budget for 429 and 5xx responses.
func WithRetries(max uint64, base time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = max
		if base > 0 {
			c.backoff = base
		}
	}
}

// NewClient creates a client for baseURL (DefaultBaseURL when empty)
// authenticating with apiKey.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: time.Minute},
		pageSize:   defaultPageSize,
		maxRetries: defaultMaxRetries,
		backoff:    defaultBackoff,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type runsResponse struct {
	Data struct {
		Project *struct {
			Runs struct {
				Edges []struct {
					Node struct {
						Name           string `json:"name"`
						DisplayName    string `json:"displayName"`
						Config         string `json:"config"`
						SummaryMetrics string `json:"summaryMetrics"`
					} `json:"node"`
				} `json:"edges"`
				PageInfo struct {
					EndCursor   string `json:"endCursor"`
					HasNextPage bool   `json:"hasNextPage"`
				} `json:"pageInfo"`
			} `json:"runs"`
		} `json:"project"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// Runs returns every run in entity/project matching filters, a MongoDB
// style filter document as accepted by the W&B API. A nil filter matches
// all runs.
func (c *Client) Runs(ctx context.Context, entity, project string, filters map[string]any) ([]Run, error) {
	if entity == "" || project == "" {
		return nil, fmt.Errorf("%w: entity and project are required", ErrTrackerQuery)
	}

	vars := map[string]any{
		"entity":  entity,
		"project": project,
		"perPage": c.pageSize,
	}
	if filters != nil {
		encoded, err := json.Marshal(filters)
		if err != nil {
			return nil, fmt.Errorf("encoding filters: %w", err)
		}
		vars["filters"] = string(encoded)
	}

	var runs []Run
	cursor := ""
	for page := 1; ; page++ {
		if cursor != "" {
			vars["cursor"] = cursor
		}

		var resp runsResponse
		if err := c.query(ctx, graphQLRequest{Query: runsQuery, Variables: vars}, &resp); err != nil {
			return nil, err
		}
		if resp.Data.Project == nil {
			return nil, &QueryError{Messages: []string{fmt.Sprintf("project %s/%s not found", entity, project)}}
		}

		for _, edge := range resp.Data.Project.Runs.Edges {
			run, err := decodeRun(edge.Node.Name, edge.Node.DisplayName, edge.Node.Config, edge.Node.SummaryMetrics)
			if err != nil {
				return nil, err
			}
			runs = append(runs, run)
		}
		slog.Debug("fetched tracker runs", "entity", entity, "project", project, "page", page, "total", len(runs))

		info := resp.Data.Project.Runs.PageInfo
		if !info.HasNextPage || info.EndCursor == "" {
			return runs, nil
		}
		cursor = info.EndCursor
	}
}

// RunsForModels returns the runs whose config names one of models as its
// fine-tuned model. No request is made when models is empty.
func (c *Client) RunsForModels(ctx context.Context, entity, project string, models []string) ([]Run, error) {
	if len(models) == 0 {
		return nil, nil
	}
	return c.Runs(ctx, entity, project, map[string]any{
		"config.fine_tuned_model": map[string]any{"$in": models},
	})
}

func (c *Client) query(ctx context.Context, body graphQLRequest, out *runsResponse) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding query: %w", err)
	}

	b := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.backoff))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := c.post(ctx, payload, out)
		var qErr *QueryError
		if errors.As(err, &qErr) && qErr.Temporary() {
			slog.Debug("retrying tracker query", "status", qErr.StatusCode)
			return retry.RetryableError(err)
		}
		return err
	})
}

func (c *Client) post(ctx context.Context, payload []byte, out *runsResponse) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/graphql", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.SetBasicAuth("api", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTrackerQuery, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrTrackerQuery, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		qErr := &QueryError{StatusCode: resp.StatusCode}
		var envelope struct {
			Errors []graphQLError `json:"errors"`
		}
		if json.Unmarshal(data, &envelope) == nil && len(envelope.Errors) > 0 {
			for _, e := range envelope.Errors {
				qErr.Messages = append(qErr.Messages, e.Message)
			}
		} else if msg := strings.TrimSpace(string(data)); msg != "" {
			qErr.Messages = []string{msg}
		}
		return qErr
	}

	*out = runsResponse{}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrTrackerQuery, err)
	}
	if len(out.Errors) > 0 {
		qErr := &QueryError{}
		for _, e := range out.Errors {
			qErr.Messages = append(qErr.Messages, e.Message)
		}
		return qErr
	}
	return nil
}
