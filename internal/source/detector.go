package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/meowmocha24/emotionmap/internal/emotion"
)

// Detector reads expression probabilities from an external face-detection
// service over HTTP. The service owns the camera and the model; this client
// only pulls one JSON reading per tick.
type Detector struct {
	baseURL string
	client  *http.Client
}

// detectResponse is the service's wire format. Unknown expression names are
// ignored; known ones missing from the map default to zero downstream.
type detectResponse struct {
	Face        bool               `json:"face"`
	Expressions map[string]float64 `json:"expressions"`
}

func NewDetector(baseURL string, timeout time.Duration) *Detector {
	if timeout <= 0 {
		timeout = time.Second
	}
	return &Detector{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (d *Detector) Name() string { return "detector" }

// Probe performs one detection round-trip. The camera permission handshake
// happens service-side on the first request.
func (d *Detector) Probe(ctx context.Context) error {
	_, err := d.fetch(ctx)
	return err
}

func (d *Detector) Detect(ctx context.Context) (emotion.Reading, error) {
	resp, err := d.fetch(ctx)
	if err != nil {
		return emotion.Reading{}, err
	}
	if !resp.Face {
		return emotion.Reading{FaceFound: false}, nil
	}

	expr := make(map[emotion.Label]float64, emotion.NumLabels)
	for name, v := range resp.Expressions {
		if l, ok := emotion.ParseLabel(name); ok {
			expr[l] = v
		}
	}
	return emotion.Reading{FaceFound: true, Expressions: expr}, nil
}

func (d *Detector) fetch(ctx context.Context) (*detectResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"/detect", nil)
	if err != nil {
		return nil, err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("detector returned %s", resp.Status)
	}

	var dr detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return nil, fmt.Errorf("decoding detector response: %w", err)
	}
	return &dr, nil
}
