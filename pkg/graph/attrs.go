package graph

import (
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/matzehuels/dagdraw/pkg/geom"
)

// Attrs holds the attributes of a node, an edge or the graph. Values are
// whatever the caller or an importer stored: strings from DOT files, float64
// from JSON, or typed Go values set in code. The accessors below coerce.
type Attrs map[string]any

// Well-known node and edge attribute keys.
const (
	AttrLabel   = "label"
	AttrLabelID = "labelId"
	AttrID      = "id"
	AttrClass   = "class"
	AttrStyle   = "style"

	AttrLabelStyle = "labelStyle"

	AttrShape         = "shape"
	AttrPadding       = "padding"
	AttrPaddingX      = "paddingX"
	AttrPaddingY      = "paddingY"
	AttrPaddingLeft   = "paddingLeft"
	AttrPaddingRight  = "paddingRight"
	AttrPaddingTop    = "paddingTop"
	AttrPaddingBottom = "paddingBottom"
	AttrRX            = "rx"
	AttrRY            = "ry"

	AttrArrowhead      = "arrowhead"
	AttrArrowheadStyle = "arrowheadStyle"
	AttrCurve          = "curve"
	AttrLabelPos       = "labelpos"

	// Layout output.
	AttrX      = "x"
	AttrY      = "y"
	AttrWidth  = "width"
	AttrHeight = "height"
	AttrPoints = "points"

	// Bookkeeping written before layout and removed by the restore pass.
	AttrPrevWidth  = "_prevWidth"
	AttrPrevHeight = "_prevHeight"
)

// Well-known graph-level attribute keys.
const (
	AttrRankDir = "rankdir"
	AttrNodeSep = "nodesep"
	AttrRankSep = "ranksep"
	AttrEdgeSep = "edgesep"
	AttrMarginX = "marginx"
	AttrMarginY = "marginy"

	// Written by the renderer: the drawing's bounding box.
	AttrMinX = "minX"
	AttrMinY = "minY"
	AttrMaxX = "maxX"
	AttrMaxY = "maxY"
)

// Has reports whether key is set.
func (a Attrs) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// String returns the value of key as text. Non-string values are formatted
// with fmt. A nil value counts as unset.
func (a Attrs) String(key string) (string, bool) {
	v, ok := a[key]
	if !ok || v == nil {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	case fmt.Stringer:
		return s.String(), true
	}
	return fmt.Sprint(v), true
}

// StringOr returns the value of key as text, or def when unset.
func (a Attrs) StringOr(key, def string) string {
	if s, ok := a.String(key); ok {
		return s
	}
	return def
}

// Float returns the value of key as a number. Strings are parsed; values that
// cannot be read as a finite-or-infinite float report false.
func (a Attrs) Float(key string) (float64, bool) {
	v, ok := a[key]
	if !ok {
		return 0, false
	}
	return ToFloat(v)
}

// FloatOr returns the value of key as a number, or def when unset or invalid.
func (a Attrs) FloatOr(key string, def float64) float64 {
	if f, ok := a.Float(key); ok {
		return f
	}
	return def
}

// Points returns a point sequence stored under key.
func (a Attrs) Points(key string) ([]geom.Point, bool) {
	switch v := a[key].(type) {
	case []geom.Point:
		return v, true
	case []any:
		pts := make([]geom.Point, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, false
			}
			x, okX := ToFloat(m["x"])
			y, okY := ToFloat(m["y"])
			if !okX || !okY {
				return nil, false
			}
			pts = append(pts, geom.Pt(x, y))
		}
		return pts, true
	}
	return nil, false
}

// Clone returns a shallow copy of a. Cloning nil yields an empty map.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return Attrs{}
	}
	return maps.Clone(a)
}

// ToFloat converts the numeric representations found in attribute maps.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}
