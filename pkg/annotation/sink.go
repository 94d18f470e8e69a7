package annotation

import (
	"fmt"

	"github.com/annolab/maskset/pkg/contour"
)

// Sink accumulates one output format from the shared export traversal.
// Adding a dataset format means adding a Sink implementation, not touching
// the traversal.
type Sink interface {
	// RecordImage registers an image before any of its annotations.
	RecordImage(imageID, width, height int)

	// RecordAnnotation appends one annotation. polygons holds every traced
	// ring of the mask; primary is the largest of them and is never empty.
	RecordAnnotation(annotationID, imageID, classID int, polygons []contour.Polygon, primary contour.Polygon)
}

// ImageFileName returns the archive file name of an image by its id.
func ImageFileName(imageID int) string {
	return fmt.Sprintf("image_%d.png", imageID)
}

// LabelFileName returns the archive file name of an image's YOLO label file.
func LabelFileName(imageID int) string {
	return fmt.Sprintf("image_%d.txt", imageID)
}
