// Package httpapi implements the remote store against the registry's HTTP
// persistence endpoint. Every mutation carries a timestamped action envelope
// so the endpoint can audit registry changes.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bonial-oss/monitor-registry/pkg/config"
	"github.com/bonial-oss/monitor-registry/pkg/models"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/pkg/errors"
)

const (
	actionCreate = "CREATE"
	actionDelete = "DELETE"
)

// record is the wire representation of a monitor.
type record struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Cadence   string    `json:"cadence"`
	Contact   string    `json:"contact"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// envelope is the body sent with every mutation.
type envelope struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Data      *record   `json:"data,omitempty"`
	MonitorID string    `json:"monitorId,omitempty"`
}

// Client talks to the HTTP persistence endpoint. It performs exactly one
// attempt per operation; retry policy belongs to the caller.
type Client struct {
	endpoint   string
	authToken  string
	httpClient *http.Client
	now        func() time.Time
}

// NewClient creates a new *Client for the configured collection endpoint.
func NewClient(c config.HTTPAPIConfig) (*Client, error) {
	if c.Endpoint == "" {
		return nil, errors.New("httpapi: endpoint must be configured")
	}

	u, err := url.Parse(c.Endpoint)
	if err != nil || !u.IsAbs() {
		return nil, errors.Errorf("httpapi: %q is not a valid endpoint url", c.Endpoint)
	}

	return &Client{
		endpoint:   strings.TrimRight(c.Endpoint, "/"),
		authToken:  c.AuthToken,
		httpClient: cleanhttp.DefaultClient(),
		now:        time.Now,
	}, nil
}

// Create implements remote.Interface.
func (c *Client) Create(ctx context.Context, monitor *models.Monitor) error {
	body := envelope{
		Timestamp: c.now().UTC(),
		Action:    actionCreate,
		Data: &record{
			ID:        monitor.ID,
			Name:      monitor.Name,
			URL:       monitor.URL,
			Cadence:   monitor.Cadence,
			Contact:   monitor.Contact,
			CreatedAt: monitor.CreatedAt,
		},
	}

	err := c.do(ctx, http.MethodPost, c.endpoint, &body, nil)

	return errors.Wrapf(err, "failed to create monitor %q", monitor.ID)
}

// Delete implements remote.Interface. Deleting an ID the endpoint does not
// know is treated as success.
func (c *Client) Delete(ctx context.Context, id string) error {
	body := envelope{
		Timestamp: c.now().UTC(),
		Action:    actionDelete,
		MonitorID: id,
	}

	err := c.do(ctx, http.MethodDelete, c.endpoint+"/"+url.PathEscape(id), &body, nil)
	if isNotFound(err) {
		return nil
	}

	return errors.Wrapf(err, "failed to delete monitor %q", id)
}

// List implements remote.Interface.
func (c *Client) List(ctx context.Context) ([]*models.Monitor, error) {
	var records []record

	err := c.do(ctx, http.MethodGet, c.endpoint, nil, &records)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list monitors")
	}

	monitors := make([]*models.Monitor, len(records))
	for i, r := range records {
		monitors[i] = &models.Monitor{
			ID:        r.ID,
			Name:      r.Name,
			URL:       r.URL,
			Cadence:   r.Cadence,
			Contact:   r.Contact,
			CreatedAt: r.CreatedAt,
		}
	}

	return monitors, nil
}

// statusError is returned for non-2xx responses so callers can branch on the
// status code.
type statusError struct {
	status int
}

func (e *statusError) Error() string {
	return "unexpected status " + http.StatusText(e.status)
}

func isNotFound(err error) bool {
	var statusErr *statusError
	return errors.As(err, &statusErr) && statusErr.status == http.StatusNotFound
}

func (c *Client) do(ctx context.Context, method, url string, body *envelope, out interface{}) error {
	var reader io.Reader

	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to encode request body")
		}

		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, url)
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Wrapf(&statusError{status: resp.StatusCode}, "%s %s", method, url)
	}

	if out == nil {
		_, err = io.Copy(io.Discard, resp.Body)
		return err
	}

	err = json.NewDecoder(resp.Body).Decode(out)

	return errors.Wrap(err, "failed to decode response body")
}
