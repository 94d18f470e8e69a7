package annotation

import (
	"github.com/annolab/maskset/pkg/contour"
)

// COCOImage is one entry of the COCO document's image list.
type COCOImage struct {
	ID       int    `json:"id"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	FileName string `json:"file_name"`
}

// COCOCategory maps a class id to its name.
type COCOCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// COCOAnnotation is one annotation record in box+polygon+area form.
// Segmentation keeps every traced polygon of the mask; BBox and Area are
// computed from the largest one.
type COCOAnnotation struct {
	ID           int         `json:"id"`
	ImageID      int         `json:"image_id"`
	CategoryID   int         `json:"category_id"`
	Segmentation [][]float64 `json:"segmentation"`
	BBox         [4]float64  `json:"bbox"`
	Area         float64     `json:"area"`
	IsCrowd      int         `json:"iscrowd"`
}

// COCODocument is the complete segmentation-format annotation document.
type COCODocument struct {
	Images      []COCOImage      `json:"images"`
	Annotations []COCOAnnotation `json:"annotations"`
	Categories  []COCOCategory   `json:"categories"`
}

// COCOSink accumulates the COCO document. Every declared class appears in
// the categories list whether or not any annotation uses it.
type COCOSink struct {
	doc COCODocument
}

// NewCOCOSink creates a sink that builds a COCO document for the given
// class index.
func NewCOCOSink(classes *ClassIndex) *COCOSink {
	sink := &COCOSink{
		doc: COCODocument{
			Images:      []COCOImage{},
			Annotations: []COCOAnnotation{},
			Categories:  make([]COCOCategory, 0, classes.Len()),
		},
	}
	for id, name := range classes.Names() {
		sink.doc.Categories = append(sink.doc.Categories, COCOCategory{ID: id, Name: name})
	}
	return sink
}

// RecordImage implements Sink.
func (s *COCOSink) RecordImage(imageID, width, height int) {
	s.doc.Images = append(s.doc.Images, COCOImage{
		ID:       imageID,
		Width:    width,
		Height:   height,
		FileName: ImageFileName(imageID),
	})
}

// RecordAnnotation implements Sink.
func (s *COCOSink) RecordAnnotation(annotationID, imageID, classID int, polygons []contour.Polygon, primary contour.Polygon) {
	segmentation := make([][]float64, 0, len(polygons))
	for _, poly := range polygons {
		segmentation = append(segmentation, poly.Flat())
	}

	x, y, w, h := primary.BoundingBox()
	s.doc.Annotations = append(s.doc.Annotations, COCOAnnotation{
		ID:           annotationID,
		ImageID:      imageID,
		CategoryID:   classID,
		Segmentation: segmentation,
		BBox:         [4]float64{float64(x), float64(y), float64(w), float64(h)},
		Area:         primary.Area(),
	})
}

// Document returns the accumulated COCO document.
func (s *COCOSink) Document() *COCODocument {
	return &s.doc
}
