package client

import (
	"context"

	"github.com/annolab/maskset/pkg/types"
)

// Segmenter produces candidate masks for an image given labeled prompt
// points. Implementations wrap an external point-prompted segmentation
// service; the export pipeline itself never calls one.
type Segmenter interface {
	Predict(ctx context.Context, imageData []byte, points []types.Point) ([]types.MaskCandidate, error)
}
