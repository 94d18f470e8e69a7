// Package annotation accumulates per-mask annotation records into the two
// export documents (COCO and YOLO) through a shared sink interface.
package annotation

import (
	"github.com/annolab/maskset/pkg/contour"
)

// Builder walks one export's annotation stream and fans it out to its
// sinks. Annotation ids are assigned starting at 0, contiguous in
// processing order; skipped masks do not consume an id. A Builder is bound
// to a single export and is not safe for concurrent use.
type Builder struct {
	classes *ClassIndex
	sinks   []Sink
	nextID  int
}

// NewBuilder creates a builder for the given class index and sinks.
func NewBuilder(classes *ClassIndex, sinks ...Sink) *Builder {
	return &Builder{classes: classes, sinks: sinks}
}

// Classes returns the export's class index.
func (b *Builder) Classes() *ClassIndex {
	return b.classes
}

// AddImage registers an image with every sink. It must be called before any
// AddMask for that image.
func (b *Builder) AddImage(imageID, width, height int) {
	for _, sink := range b.sinks {
		sink.RecordImage(imageID, width, height)
	}
}

// AddMask records one mask's trace result. An empty trace (fully empty
// mask) is skipped: no record is produced and the id counter does not
// advance. Otherwise the largest-area polygon becomes the primary one, with
// exact ties resolved in favor of the earliest in trace order, and the next
// annotation id is assigned.
func (b *Builder) AddMask(imageID, classID int, polygons []contour.Polygon) (id int, added bool) {
	if len(polygons) == 0 {
		return 0, false
	}

	primary := polygons[0]
	best := primary.Area()
	for _, poly := range polygons[1:] {
		if a := poly.Area(); a > best {
			primary = poly
			best = a
		}
	}

	id = b.nextID
	b.nextID++
	for _, sink := range b.sinks {
		sink.RecordAnnotation(id, imageID, classID, polygons, primary)
	}

	return id, true
}

// Count returns the number of annotations recorded so far.
func (b *Builder) Count() int {
	return b.nextID
}
