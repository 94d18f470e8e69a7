package archive

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/annolab/maskset/pkg/annotation"
	"github.com/annolab/maskset/pkg/contour"
	"github.com/annolab/maskset/pkg/types"
)

// buildTestExport assembles a two-image export where only the first image
// has an annotation.
func buildTestExport() ([]ImageFile, *annotation.COCODocument, *annotation.YOLODocument, *annotation.ClassIndex) {
	classes := annotation.NewClassIndex([]types.ClassInfo{
		{Name: "cat"},
		{Name: "dog"},
	})
	coco := annotation.NewCOCOSink(classes)
	yolo := annotation.NewYOLOSink()
	builder := annotation.NewBuilder(classes, coco, yolo)

	builder.AddImage(0, 100, 100)
	builder.AddImage(1, 100, 100)
	builder.AddMask(0, 0, []contour.Polygon{
		{{X: 10, Y: 10}, {X: 30, Y: 10}, {X: 30, Y: 30}, {X: 10, Y: 30}},
	})

	images := []ImageFile{
		{ID: 0, PNG: []byte("png-bytes-0")},
		{ID: 1, PNG: []byte("png-bytes-1")},
	}

	return images, coco.Document(), yolo.Document(), classes
}

func readEntry(t *testing.T, zr *zip.Reader, name string) []byte {
	t.Helper()

	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Failed to open %s: %v", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("Failed to read %s: %v", name, err)
		}
		return data
	}

	t.Fatalf("Archive entry %s not found", name)
	return nil
}

func openArchive(t *testing.T, data []byte) *zip.Reader {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("Failed to open archive: %v", err)
	}
	return zr
}

func TestPackageLayout(t *testing.T) {
	images, coco, yolo, classes := buildTestExport()

	data, err := NewPackager().Package(images, coco, yolo, classes)
	if err != nil {
		t.Fatalf("Package failed: %v", err)
	}

	zr := openArchive(t, data)

	want := map[string]bool{
		"images/image_0.png":           true,
		"images/image_1.png":           true,
		"labels/yolo/image_0.txt":      true,
		"labels/yolo/data.yaml":        true,
		"labels/coco/annotations.json": true,
	}
	got := map[string]bool{}
	for _, f := range zr.File {
		got[f.Name] = true
	}

	for name := range want {
		if !got[name] {
			t.Errorf("Missing archive entry %s", name)
		}
	}
	if got["labels/yolo/image_1.txt"] {
		t.Error("Expected no label file for unannotated image")
	}
	if len(got) != len(want) {
		t.Errorf("Unexpected entries in archive: %v", got)
	}
}

func TestPackageImageRoundTrip(t *testing.T) {
	images, coco, yolo, classes := buildTestExport()

	data, err := NewPackager().Package(images, coco, yolo, classes)
	if err != nil {
		t.Fatalf("Package failed: %v", err)
	}

	zr := openArchive(t, data)

	imageEntries := 0
	for _, f := range zr.File {
		if len(f.Name) > 7 && f.Name[:7] == "images/" {
			imageEntries++
		}
	}
	if imageEntries != len(images) {
		t.Errorf("Expected %d image entries, got %d", len(images), imageEntries)
	}

	if !bytes.Equal(readEntry(t, zr, "images/image_0.png"), images[0].PNG) {
		t.Error("Image entry content does not match input")
	}
}

func TestPackageAnnotationsJSON(t *testing.T) {
	images, coco, yolo, classes := buildTestExport()

	data, err := NewPackager().Package(images, coco, yolo, classes)
	if err != nil {
		t.Fatalf("Package failed: %v", err)
	}

	zr := openArchive(t, data)

	var doc annotation.COCODocument
	if err := json.Unmarshal(readEntry(t, zr, "labels/coco/annotations.json"), &doc); err != nil {
		t.Fatalf("Failed to parse annotations.json: %v", err)
	}

	if len(doc.Images) != 2 {
		t.Errorf("Expected 2 images in document, got %d", len(doc.Images))
	}
	if len(doc.Annotations) != 1 {
		t.Errorf("Expected 1 annotation, got %d", len(doc.Annotations))
	}
	if len(doc.Categories) != 2 {
		t.Errorf("Expected 2 categories, got %d", len(doc.Categories))
	}
}

func TestPackageDataYAML(t *testing.T) {
	images, coco, yolo, classes := buildTestExport()

	data, err := NewPackager().Package(images, coco, yolo, classes)
	if err != nil {
		t.Fatalf("Package failed: %v", err)
	}

	zr := openArchive(t, data)

	var manifest DataYAML
	if err := yaml.Unmarshal(readEntry(t, zr, "labels/yolo/data.yaml"), &manifest); err != nil {
		t.Fatalf("Failed to parse data.yaml: %v", err)
	}

	if manifest.NC != 2 {
		t.Errorf("Expected nc 2, got %d", manifest.NC)
	}
	if len(manifest.Names) != 2 || manifest.Names[0] != "cat" || manifest.Names[1] != "dog" {
		t.Errorf("Unexpected names: %v", manifest.Names)
	}
}

func TestPackageIdempotent(t *testing.T) {
	images, coco, yolo, classes := buildTestExport()
	packager := NewPackager()

	first, err := packager.Package(images, coco, yolo, classes)
	if err != nil {
		t.Fatalf("Package failed: %v", err)
	}
	second, err := packager.Package(images, coco, yolo, classes)
	if err != nil {
		t.Fatalf("Package failed: %v", err)
	}

	zr1 := openArchive(t, first)
	zr2 := openArchive(t, second)
	for _, f := range zr1.File {
		if !bytes.Equal(readEntry(t, zr1, f.Name), readEntry(t, zr2, f.Name)) {
			t.Errorf("Entry %s differs between identical packaging runs", f.Name)
		}
	}
}
