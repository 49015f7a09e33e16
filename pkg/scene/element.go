package scene

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

type attr struct {
	name  string
	value string
}

// Element is one node of the retained tree. Attributes keep the order in
// which they were first set.
type Element struct {
	Tag      string
	Text     string
	Children []*Element

	attrs  []attr
	key    string
	parent *Element
}

// New creates a detached element.
func New(tag string) *Element { return &Element{Tag: tag} }

// Parent returns the element e is attached to, or nil.
func (e *Element) Parent() *Element { return e.parent }

// Key returns the identity key given to [Element.Keyed], if any.
func (e *Element) Key() string { return e.key }

// Append adds a new child element and returns it.
func (e *Element) Append(tag string) *Element {
	c := &Element{Tag: tag, parent: e}
	e.Children = append(e.Children, c)
	return c
}

// Insert adds a new child element before the existing children.
func (e *Element) Insert(tag string) *Element {
	c := &Element{Tag: tag, parent: e}
	e.Children = slices.Insert(e.Children, 0, c)
	return c
}

// Group returns the first <g> child whose class list contains name, creating
// it when there is none.
func (e *Element) Group(name string) *Element {
	if g := e.Select("g", name); g != nil {
		return g
	}
	return e.Append("g").Set("class", name)
}

// Select returns the first direct child with the given tag whose class list
// contains class, or nil.
func (e *Element) Select(tag, class string) *Element {
	for _, c := range e.Children {
		if c.Tag == tag && c.HasClass(class) {
			return c
		}
	}
	return nil
}

// SelectAll returns all direct children with the given tag and class.
func (e *Element) SelectAll(tag, class string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Tag == tag && c.HasClass(class) {
			out = append(out, c)
		}
	}
	return out
}

// Keyed returns the direct child carrying key, creating a new <tag
// class="class"> when there is none.
func (e *Element) Keyed(tag, class, key string) *Element {
	if c := e.Lookup(key); c != nil {
		return c
	}
	c := e.Append(tag).Set("class", class)
	c.key = key
	return c
}

// Lookup returns the direct child carrying key, or nil.
func (e *Element) Lookup(key string) *Element {
	for _, c := range e.Children {
		if c.key == key {
			return c
		}
	}
	return nil
}

// HasClass reports whether the class attribute contains name. An empty name
// matches every element.
func (e *Element) HasClass(name string) bool {
	if name == "" {
		return true
	}
	v, _ := e.Get("class")
	for _, f := range strings.Fields(v) {
		if f == name {
			return true
		}
	}
	return false
}

// AddClass appends name to the class attribute unless it is already there.
// Empty names are ignored.
func (e *Element) AddClass(name string) *Element {
	name = strings.TrimSpace(name)
	if name == "" || e.HasClass(name) {
		return e
	}
	if v, ok := e.Get("class"); ok && v != "" {
		return e.Set("class", v+" "+name)
	}
	return e.Set("class", name)
}

// Set assigns an attribute. Numbers are formatted with [Num]; other values
// with fmt. It returns e for chaining.
func (e *Element) Set(name string, value any) *Element {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case float64:
		s = Num(v)
	case float32:
		s = Num(float64(v))
	case int:
		s = strconv.Itoa(v)
	default:
		s = fmt.Sprint(v)
	}
	for i := range e.attrs {
		if e.attrs[i].name == name {
			e.attrs[i].value = s
			return e
		}
	}
	e.attrs = append(e.attrs, attr{name: name, value: s})
	return e
}

// SetIf assigns an attribute only when value is non-empty.
func (e *Element) SetIf(name, value string) *Element {
	if value == "" {
		return e
	}
	return e.Set(name, value)
}

// Get returns an attribute value.
func (e *Element) Get(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.name == name {
			return a.value, true
		}
	}
	return "", false
}

// SetText replaces the character data of e.
func (e *Element) SetText(s string) *Element {
	e.Text = s
	return e
}

// Clear removes every child of e.
func (e *Element) Clear() {
	for _, c := range e.Children {
		c.parent = nil
	}
	e.Children = nil
}

// Num formats a coordinate: at most three decimals, no trailing zeros,
// and never "-0".
func Num(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// Translate formats an SVG translate transform.
func Translate(x, y float64) string {
	return "translate(" + Num(x) + "," + Num(y) + ")"
}
