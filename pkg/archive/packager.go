// Package archive serializes an export's images and annotation documents
// into a single zip archive with a fixed directory layout:
//
//	images/image_<i>.png
//	labels/yolo/image_<i>.txt   (only for images with annotations)
//	labels/yolo/data.yaml
//	labels/coco/annotations.json
package archive

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/annolab/maskset/pkg/annotation"
)

// ImageFile is one image to include in the archive, already re-encoded
// to PNG.
type ImageFile struct {
	ID  int
	PNG []byte
}

// DataYAML is the YOLO dataset manifest: the class names in id order and
// their count.
type DataYAML struct {
	NC    int      `yaml:"nc"`
	Names []string `yaml:"names"`
}

// Packager builds export archives. It holds no state; the same inputs
// always produce an equivalent archive.
type Packager struct{}

// NewPackager creates a Packager.
func NewPackager() *Packager {
	return &Packager{}
}

// Package serializes the images and both annotation documents into zip
// archive bytes. Inputs are not mutated, and no partial archive is returned
// on failure.
func (p *Packager) Package(images []ImageFile, coco *annotation.COCODocument, yolo *annotation.YOLODocument, classes *annotation.ClassIndex) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, img := range images {
		if err := writeEntry(zw, "images/"+annotation.ImageFileName(img.ID), img.PNG); err != nil {
			return nil, err
		}
	}

	for _, img := range images {
		block, ok := yolo.Block(img.ID)
		if !ok {
			continue
		}
		if err := writeEntry(zw, "labels/yolo/"+annotation.LabelFileName(img.ID), []byte(block)); err != nil {
			return nil, err
		}
	}

	manifest, err := yaml.Marshal(DataYAML{NC: classes.Len(), Names: classes.Names()})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal data.yaml: %w", err)
	}
	if err := writeEntry(zw, "labels/yolo/data.yaml", manifest); err != nil {
		return nil, err
	}

	doc, err := json.MarshalIndent(coco, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal annotations.json: %w", err)
	}
	if err := writeEntry(zw, "labels/coco/annotations.json", doc); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	return buf.Bytes(), nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create archive entry %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write archive entry %s: %w", name, err)
	}
	return nil
}
