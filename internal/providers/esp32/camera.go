package esp32

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/disintegration/imaging"

	"github.com/sandevgo/lifeos/internal/config"
	"github.com/sandevgo/lifeos/internal/core"
)

// Camera captures single frames from the ESP32 camera over HTTP. One attempt
// per capture, bounded by the configured timeout so a dead device cannot
// stall an interaction.
type Camera struct {
	client *http.Client
	url    string
}

func NewCamera(cfg *config.CameraConfig) *Camera {
	return &Camera{
		client: &http.Client{Timeout: cfg.Timeout()},
		url:    cfg.SnapshotURL,
	}
}

func (c *Camera) Capture(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", core.ErrCaptureFailed, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", core.ErrCaptureFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: http %d", core.ErrCaptureFailed, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", core.ErrCaptureFailed, err)
	}

	// Reject frames the device truncated mid-transfer.
	if _, err := imaging.Decode(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: invalid frame: %s", core.ErrCaptureFailed, err)
	}

	return data, nil
}
