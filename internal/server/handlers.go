package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/annolab/maskset/pkg/overlay"
	"github.com/annolab/maskset/pkg/raster"
	"github.com/annolab/maskset/pkg/types"
)

type predictPoints struct {
	Points []types.Point `json:"points"`
}

type predictMask struct {
	MaskB64    string  `json:"mask_b64"`
	Score      float64 `json:"score"`
	OverlayB64 string  `json:"overlay_b64,omitempty"`
}

type predictResult struct {
	Masks []predictMask `json:"masks"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handlePredict accepts a multipart form with an image file and a
// points_json field, forwards them to the segmentation backend, and returns
// the candidate masks. With overlay=png or overlay=webp each mask is also
// rendered as a tinted preview image.
func (s *Server) handlePredict(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing image file")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable image file")
	}
	defer file.Close()
	imageData, err := io.ReadAll(file)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable image file")
	}

	var points predictPoints
	if err := json.Unmarshal([]byte(c.FormValue("points_json")), &points); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid points: %v", err))
	}
	if len(points.Points) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "at least one point is required")
	}

	overlayFormat := c.FormValue("overlay")
	if overlayFormat != "" && overlayFormat != "png" && overlayFormat != "webp" {
		return echo.NewHTTPError(http.StatusBadRequest, "overlay must be png or webp")
	}

	candidates, err := s.segmenter.Predict(c.Request().Context(), imageData, points.Points)
	if err != nil {
		s.log.Error("segmentation backend failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadGateway, "segmentation backend unavailable")
	}

	result := predictResult{Masks: make([]predictMask, 0, len(candidates))}
	for _, cand := range candidates {
		m := predictMask{MaskB64: cand.MaskB64, Score: cand.Score}
		if overlayFormat != "" {
			rendered, err := s.renderOverlay(cand.MaskB64, overlayFormat)
			if err != nil {
				s.log.Warn("overlay rendering failed", zap.Error(err))
			} else {
				m.OverlayB64 = rendered
			}
		}
		result.Masks = append(result.Masks, m)
	}

	return c.JSON(http.StatusOK, result)
}

// handleExport runs the export pipeline on a JSON request and streams the
// resulting archive back as a download.
func (s *Server) handleExport(c echo.Context) error {
	var req types.ExportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid export request: %v", err))
	}
	if len(req.Images) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "export request has no images")
	}

	exportID := uuid.NewString()
	result, err := s.exporter.Export(req)
	if err != nil {
		s.log.Error("export failed", zap.String("export_id", exportID), zap.Error(err))
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	for _, warning := range result.Warnings {
		s.log.Warn("export warning", zap.String("export_id", exportID), zap.String("warning", warning))
	}
	s.log.Info("export complete",
		zap.String("export_id", exportID),
		zap.Int("images", result.ImageCount),
		zap.Int("annotations", result.AnnotationCount),
		zap.Int("archive_bytes", len(result.Archive)))

	c.Response().Header().Set("X-Export-ID", exportID)
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="dataset_%s.zip"`, exportID[:8]))
	return c.Blob(http.StatusOK, "application/zip", result.Archive)
}

// renderOverlay decodes a base64 mask and renders it as a tinted preview in
// the requested format.
func (s *Server) renderOverlay(maskB64, format string) (string, error) {
	maskData, err := base64.StdEncoding.DecodeString(maskB64)
	if err != nil {
		return "", fmt.Errorf("failed to decode mask: %w", err)
	}

	img, err := raster.Decode(maskData)
	if err != nil {
		return "", fmt.Errorf("failed to decode mask: %w", err)
	}
	bounds := img.Bounds()
	grid, err := raster.Rasterize(img, bounds.Dx(), bounds.Dy())
	if err != nil {
		return "", err
	}

	rendered := overlay.Render(grid, overlay.DefaultTint)
	var encoded []byte
	if format == "webp" {
		encoded, err = overlay.EncodeWebP(rendered)
	} else {
		encoded, err = overlay.EncodePNG(rendered)
	}
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(encoded), nil
}
