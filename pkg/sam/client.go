// Package sam is an HTTP client for the external point-prompted
// segmentation service.
package sam

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/annolab/maskset/pkg/types"
)

// Client talks to the segmentation service's /predict endpoint. It
// implements client.Segmenter.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type predictPoints struct {
	Points []types.Point `json:"points"`
}

type predictResponse struct {
	Masks []types.MaskCandidate `json:"masks"`
}

// NewClient creates a client for the given service URL.
func NewClient(serverURL string) (*Client, error) {
	if serverURL == "" {
		serverURL = "http://localhost:8000"
	}

	return &Client{
		baseURL: strings.TrimSuffix(serverURL, "/"),
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}, nil
}

// Predict sends an image and its prompt points to the service and returns
// the candidate masks sorted by descending score.
func (c *Client) Predict(ctx context.Context, imageData []byte, points []types.Point) ([]types.MaskCandidate, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 120*time.Second)
		defer cancel()
	}

	pointsJSON, err := json.Marshal(predictPoints{Points: points})
	if err != nil {
		return nil, fmt.Errorf("failed to encode points: %w", err)
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("image", "image.png")
	if err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}
	if _, err := part.Write(imageData); err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}
	if err := form.WriteField("points_json", string(pointsJSON)); err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("predict request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("predict request failed: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var parsed predictResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	masks := parsed.Masks
	sort.SliceStable(masks, func(i, j int) bool {
		return masks[i].Score > masks[j].Score
	})

	return masks, nil
}
