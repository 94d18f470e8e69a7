// Package maskset converts per-image segmentation masks and class labels
// into a packaged annotation dataset.
//
// Masks are decoded into binary grids, their external boundaries traced
// into polygons, and the results accumulated into two annotation documents
// (COCO box+polygon+area, YOLO normalized polygons) that share one class id
// mapping. The images and both documents are then packaged into a single
// zip archive.
//
// Basic usage:
//
//	exporter := maskset.New()
//	result, err := exporter.Export(types.ExportRequest{
//		Images:  []types.ImageEntry{{Data: imageBytes, Masks: masks}},
//		Classes: []types.ClassInfo{{Name: "cat"}},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	os.WriteFile("dataset.zip", result.Archive, 0o644)
//
// An export is a pure, deterministic transform of its request: images and
// masks are processed strictly sequentially so annotation ids only depend
// on input order, and no state survives the call. Separate exports may run
// concurrently, each with its own Exporter.
package maskset

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"

	"github.com/annolab/maskset/pkg/annotation"
	"github.com/annolab/maskset/pkg/archive"
	"github.com/annolab/maskset/pkg/contour"
	"github.com/annolab/maskset/pkg/raster"
	"github.com/annolab/maskset/pkg/types"
)

// Version of the maskset library
const Version = "1.0.0"

// Exporter runs the annotation export pipeline.
type Exporter struct {
	packager *archive.Packager
}

// New creates an Exporter.
func New() *Exporter {
	return &Exporter{packager: archive.NewPackager()}
}

// ExportResult is the outcome of one export.
type ExportResult struct {
	// Archive is the complete zip archive.
	Archive []byte
	// ImageCount is the number of images included in the archive.
	ImageCount int
	// AnnotationCount is the number of annotation records produced.
	AnnotationCount int
	// Warnings lists the images and masks that were skipped and why.
	Warnings []string
}

// Export runs the full pipeline on one request. Malformed images and masks
// (decode failures, unknown class names, dimension mismatches) are skipped
// with a warning; the export fails only when every image payload fails to
// decode, or when the final archive cannot be written. Empty masks and
// degenerate traces are skipped silently.
func (e *Exporter) Export(req types.ExportRequest) (*ExportResult, error) {
	classes := annotation.NewClassIndex(req.Classes)
	cocoSink := annotation.NewCOCOSink(classes)
	yoloSink := annotation.NewYOLOSink()
	builder := annotation.NewBuilder(classes, cocoSink, yoloSink)

	var files []archive.ImageFile
	var warnings []string

	for i, entry := range req.Images {
		img, err := raster.Decode(entry.Data)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("image %d: %v", i, err))
			continue
		}

		bounds := img.Bounds()
		width, height := bounds.Dx(), bounds.Dy()

		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
			warnings = append(warnings, fmt.Sprintf("image %d: failed to encode: %v", i, err))
			continue
		}

		builder.AddImage(i, width, height)
		files = append(files, archive.ImageFile{ID: i, PNG: buf.Bytes()})

		for j, mask := range entry.Masks {
			classID, ok := classes.Lookup(mask.ClassName)
			if !ok {
				warnings = append(warnings, fmt.Sprintf("image %d mask %d: unknown class %q", i, j, mask.ClassName))
				continue
			}

			grid, err := raster.RasterizeBytes(mask.Data, width, height)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("image %d mask %d: %v", i, j, err))
				continue
			}

			// Empty traces are degenerate geometry, not errors.
			builder.AddMask(i, classID, contour.Trace(grid))
		}
	}

	if len(req.Images) > 0 && len(files) == 0 {
		return nil, fmt.Errorf("export failed: none of the %d images could be decoded", len(req.Images))
	}

	archiveBytes, err := e.packager.Package(files, cocoSink.Document(), yoloSink.Document(), classes)
	if err != nil {
		return nil, fmt.Errorf("export failed: %w", err)
	}

	return &ExportResult{
		Archive:         archiveBytes,
		ImageCount:      len(files),
		AnnotationCount: builder.Count(),
		Warnings:        warnings,
	}, nil
}

// GetVersion returns the library version.
func GetVersion() string {
	return Version
}
