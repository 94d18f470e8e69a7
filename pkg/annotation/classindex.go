package annotation

import (
	"github.com/annolab/maskset/pkg/types"
)

// ClassIndex is the ordered class list of one export. A class id is the
// class's position in the declared order, and the same mapping is used by
// every output format. The index is built once at export start and never
// mutated afterwards.
type ClassIndex struct {
	classes []types.ClassInfo
	byName  map[string]int
}

// NewClassIndex builds an index from the declared class list, preserving
// order. Duplicate names keep their first position.
func NewClassIndex(classes []types.ClassInfo) *ClassIndex {
	idx := &ClassIndex{
		classes: classes,
		byName:  make(map[string]int, len(classes)),
	}
	for i, c := range classes {
		if _, ok := idx.byName[c.Name]; !ok {
			idx.byName[c.Name] = i
		}
	}
	return idx
}

// Lookup resolves a class name to its id.
func (ci *ClassIndex) Lookup(name string) (int, bool) {
	id, ok := ci.byName[name]
	return id, ok
}

// Names returns the class names in id order.
func (ci *ClassIndex) Names() []string {
	names := make([]string, len(ci.classes))
	for i, c := range ci.classes {
		names[i] = c.Name
	}
	return names
}

// Len returns the number of declared classes.
func (ci *ClassIndex) Len() int {
	return len(ci.classes)
}
