package types

// Point is a single labeled prompt point in pixel coordinates.
// Label 1 marks a foreground point, 0 a background point.
type Point struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Label int `json:"label"`
}

// MaskCandidate is one mask proposed by the segmentation backend for a set
// of prompt points. MaskB64 holds a base64-encoded mask image whose
// alpha/intensity channel encodes membership.
type MaskCandidate struct {
	MaskB64 string  `json:"mask_b64"`
	Score   float64 `json:"score"`
}

// ClassInfo describes one annotation class. Color is display-only and never
// appears in the exported annotation documents.
type ClassInfo struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// SavedMask is one accepted mask for an image: the encoded mask image plus
// the class name it was labeled with. The mask must have the same pixel
// dimensions as its owning image.
type SavedMask struct {
	Data      []byte `json:"data"`
	ClassName string `json:"class_name"`
}

// ImageEntry is one image of an export batch together with its saved masks.
// The image id is its position in the request's image list.
type ImageEntry struct {
	Data  []byte      `json:"data"`
	Masks []SavedMask `json:"masks"`
}

// ExportRequest is the complete input of one dataset export. The order of
// Classes defines the class id mapping used by both output formats.
type ExportRequest struct {
	Images  []ImageEntry `json:"images"`
	Classes []ClassInfo  `json:"classes"`
}
