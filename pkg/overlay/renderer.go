package overlay

import "sort"

// BoxStyle is the style set for the sizing box that wraps the panel. All
// length fields are CSS lengths; empty strings mean "not set". When the
// selected placement is exact, the box collapses to a full-size passthrough
// (top/left zero, width/height 100%) and the panel styles carry the actual
// coordinates.
type BoxStyle struct {
	Top       string `json:"top,omitempty" bson:"top,omitempty"`
	Left      string `json:"left,omitempty" bson:"left,omitempty"`
	Bottom    string `json:"bottom,omitempty" bson:"bottom,omitempty"`
	Right     string `json:"right,omitempty" bson:"right,omitempty"`
	Width     string `json:"width,omitempty" bson:"width,omitempty"`
	Height    string `json:"height,omitempty" bson:"height,omitempty"`
	MaxWidth  string `json:"max_width,omitempty" bson:"max_width,omitempty"`
	MaxHeight string `json:"max_height,omitempty" bson:"max_height,omitempty"`

	// Flex alignment hints for axes anchored at center or end.
	AlignItems     string `json:"align_items,omitempty" bson:"align_items,omitempty"`
	JustifyContent string `json:"justify_content,omitempty" bson:"justify_content,omitempty"`
}

// PanelStyle is the style set for the panel element itself.
type PanelStyle struct {
	Position  string `json:"position,omitempty" bson:"position,omitempty"`
	Top       string `json:"top,omitempty" bson:"top,omitempty"`
	Left      string `json:"left,omitempty" bson:"left,omitempty"`
	Bottom    string `json:"bottom,omitempty" bson:"bottom,omitempty"`
	Right     string `json:"right,omitempty" bson:"right,omitempty"`
	Transform string `json:"transform,omitempty" bson:"transform,omitempty"`
	MaxWidth  string `json:"max_width,omitempty" bson:"max_width,omitempty"`
	MaxHeight string `json:"max_height,omitempty" bson:"max_height,omitempty"`
}

// Renderer is the sink for computed styles. The engine stays free of any
// environment access; a host adapter applies these values to its real
// elements. Each positioning pass emits complete style sets, so renderers
// replace rather than merge.
type Renderer interface {
	SetBoundingBoxStyle(BoxStyle)
	SetPanelStyle(PanelStyle)
	AddPanelClasses(classes []string)
	RemovePanelClasses(classes []string)
}

// =============================================================================
// Recorder
// =============================================================================

// Recorder is a Renderer that captures the last applied styles and tracks
// the active class set. It backs tests, scenario solving, and the demo.
type Recorder struct {
	BoundingBox BoxStyle
	Panel       PanelStyle
	classes     map[string]struct{}

	// BoxWrites counts SetBoundingBoxStyle calls, which tests use to verify
	// reapply-under-lock emits without recomputing.
	BoxWrites int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{classes: map[string]struct{}{}}
}

// SetBoundingBoxStyle records the sizing box style.
func (r *Recorder) SetBoundingBoxStyle(s BoxStyle) {
	r.BoundingBox = s
	r.BoxWrites++
}

// SetPanelStyle records the panel style.
func (r *Recorder) SetPanelStyle(s PanelStyle) { r.Panel = s }

// AddPanelClasses adds classes to the active set.
func (r *Recorder) AddPanelClasses(classes []string) {
	for _, c := range classes {
		r.classes[c] = struct{}{}
	}
}

// RemovePanelClasses removes classes from the active set.
func (r *Recorder) RemovePanelClasses(classes []string) {
	for _, c := range classes {
		delete(r.classes, c)
	}
}

// Classes returns the active class set in sorted order.
func (r *Recorder) Classes() []string {
	out := make([]string, 0, len(r.classes))
	for c := range r.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
