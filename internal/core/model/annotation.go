package model

import "fmt"

// Annotation is a single record an annotator returned for one backbone row.
// The typed fields are the ones most annotators share; anything else lives in
// Attributes, whose values must be JSON scalars. Annotators report "queried,
// no data" as a record with every field empty.
type Annotation struct {
	ID         string         `json:"id,omitempty"`
	Namespace  string         `json:"namespace,omitempty"`
	Name       string         `json:"name,omitempty"`
	Relation   string         `json:"relation_type,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// Empty reports whether the annotation is a no-data placeholder: all typed
// fields blank and no non-nil attribute values.
func (a Annotation) Empty() bool {
	if a.ID != "" || a.Namespace != "" || a.Name != "" || a.Relation != "" {
		return false
	}
	for _, v := range a.Attributes {
		if v != nil {
			return false
		}
	}
	return true
}

// Validate rejects attribute values that are not JSON scalars. A nested
// container means the record is not key-value shaped.
func (a Annotation) Validate() error {
	for k, v := range a.Attributes {
		switch v.(type) {
		case nil, string, bool, float64, float32, int, int32, int64:
		default:
			return fmt.Errorf("attribute %q holds %T, want a scalar", k, v)
		}
	}
	return nil
}

// Prune returns a copy with nil-valued attributes removed. An empty map
// prunes to nil.
func (a Annotation) Prune() Annotation {
	if len(a.Attributes) == 0 {
		a.Attributes = nil
		return a
	}
	attrs := make(map[string]any, len(a.Attributes))
	for k, v := range a.Attributes {
		if v != nil {
			attrs[k] = v
		}
	}
	if len(attrs) == 0 {
		attrs = nil
	}
	a.Attributes = attrs
	return a
}
