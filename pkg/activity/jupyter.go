package activity

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/younsl/autostop/internal/models"
)

// JupyterClient talks to the local notebook server REST API
type JupyterClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewJupyterClient returns a client for the notebook server on the loopback
// interface. The server uses a self-signed certificate, so verification is off.
func NewJupyterClient(baseURL string) *JupyterClient {
	return &JupyterClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // #nosec G402 loopback only
			},
		},
	}
}

type jupyterKernel struct {
	ID           string `json:"id"`
	LastActivity string `json:"last_activity"`
	Connections  int    `json:"connections"`
}

type jupyterSession struct {
	ID     string         `json:"id"`
	Kernel *jupyterKernel `json:"kernel"`
}

func (c *JupyterClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("error calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding %s: %w", path, err)
	}
	return nil
}

// JupyterSessions reports the latest kernel activity across sessions
type JupyterSessions struct {
	Client *JupyterClient
}

func (j *JupyterSessions) Name() string   { return "jupyter-sessions" }
func (j *JupyterSessions) Signal() string { return models.SignalLastActivity }

// Read returns ErrNoActivity when the server has no kernels at all
func (j *JupyterSessions) Read(ctx context.Context) (Reading, error) {
	var sessions []jupyterSession
	if err := j.Client.get(ctx, "/api/sessions", &sessions); err != nil {
		return Reading{}, err
	}

	var latest time.Time
	for _, s := range sessions {
		if s.Kernel == nil || s.Kernel.LastActivity == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339Nano, s.Kernel.LastActivity)
		if err != nil {
			return Reading{}, fmt.Errorf("error parsing last_activity %q: %w", s.Kernel.LastActivity, err)
		}
		if t.After(latest) {
			latest = t
		}
	}

	if latest.IsZero() {
		return Reading{}, ErrNoActivity
	}
	return Reading{LastActivity: latest}, nil
}

// JupyterKernels counts client connections attached to running kernels
type JupyterKernels struct {
	Client *JupyterClient
}

func (j *JupyterKernels) Name() string   { return "jupyter-kernels" }
func (j *JupyterKernels) Signal() string { return models.SignalConnections }

func (j *JupyterKernels) Read(ctx context.Context) (Reading, error) {
	var kernels []jupyterKernel
	if err := j.Client.get(ctx, "/api/kernels", &kernels); err != nil {
		return Reading{}, err
	}
	total := 0
	for _, k := range kernels {
		total += k.Connections
	}
	return Reading{Connections: total}, nil
}
