package annotation

import (
	"fmt"
	"strings"

	"github.com/annolab/maskset/pkg/contour"
)

// YOLODocument holds the normalized-polygon label lines of one export,
// keyed by image id. Each line is the class id followed by the primary
// polygon's vertices normalized to [0, 1] by the image dimensions.
type YOLODocument struct {
	lines map[int][]string
}

// Lines returns an image's label lines in annotation order. Images without
// annotations have none.
func (d *YOLODocument) Lines(imageID int) []string {
	return d.lines[imageID]
}

// Block returns an image's label file content, one line per annotation with
// a trailing newline. ok is false when the image has no annotations and no
// label file should be written.
func (d *YOLODocument) Block(imageID int) (content string, ok bool) {
	lines := d.lines[imageID]
	if len(lines) == 0 {
		return "", false
	}
	return strings.Join(lines, "\n") + "\n", true
}

// YOLOSink accumulates the YOLO document. Only the primary polygon of each
// annotation is written; the image dimensions recorded by RecordImage are
// used for normalization.
type YOLOSink struct {
	doc  YOLODocument
	dims map[int][2]int
}

// NewYOLOSink creates a sink that builds a YOLO document.
func NewYOLOSink() *YOLOSink {
	return &YOLOSink{
		doc:  YOLODocument{lines: make(map[int][]string)},
		dims: make(map[int][2]int),
	}
}

// RecordImage implements Sink.
func (s *YOLOSink) RecordImage(imageID, width, height int) {
	s.dims[imageID] = [2]int{width, height}
}

// RecordAnnotation implements Sink.
func (s *YOLOSink) RecordAnnotation(annotationID, imageID, classID int, polygons []contour.Polygon, primary contour.Polygon) {
	if len(primary) == 0 {
		return
	}
	dims, ok := s.dims[imageID]
	if !ok {
		return
	}

	var line strings.Builder
	fmt.Fprintf(&line, "%d", classID)
	for _, v := range primary.NormalizedFlat(dims[0], dims[1]) {
		fmt.Fprintf(&line, " %.6f", v)
	}
	s.doc.lines[imageID] = append(s.doc.lines[imageID], line.String())
}

// Document returns the accumulated YOLO document.
func (s *YOLOSink) Document() *YOLODocument {
	return &s.doc
}
