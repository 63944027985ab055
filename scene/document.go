package scene

import (
	"slices"

	"github.com/goccy/go-yaml"
)

// Document is an ordered key-value map. Values are float64, int, bool,
// string, []float64, *Document, or *Components.
type Document struct {
	vals map[string]any
	keys []string
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{vals: map[string]any{}}
}

// Set stores v under key. A new key is appended to the key order; an
// existing key keeps its position.
func (d *Document) Set(key string, v any) {
	if _, ok := d.vals[key]; !ok {
		d.keys = append(d.keys, key)
	}

	d.vals[key] = v
}

// Get returns the value stored under key.
func (d *Document) Get(key string) (any, bool) {
	if d == nil {
		return nil, false
	}

	v, ok := d.vals[key]

	return v, ok
}

// Keys returns the keys in insertion order.
func (d *Document) Keys() []string {
	if d == nil {
		return nil
	}

	return slices.Clone(d.keys)
}

// Len returns the number of keys.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}

	return len(d.keys)
}

// Document returns the value stored under key if it is a nested document.
func (d *Document) Document(key string) *Document {
	v, _ := d.Get(key)
	doc, _ := v.(*Document)

	return doc
}

// Components returns the component list of a shape document, or nil.
func (d *Document) Components() *Components {
	v, _ := d.Get(keyComponents)
	c, _ := v.(*Components)

	return c
}

// MarshalYAML implements [yaml.InterfaceMarshaler]. Key order is preserved
// and empty component lists are omitted.
func (d *Document) MarshalYAML() (any, error) {
	items := make(yaml.MapSlice, 0, d.Len())

	for _, key := range d.keys {
		v := d.vals[key]
		if c, ok := v.(*Components); ok && c.Len() == 0 {
			continue
		}

		items = append(items, yaml.MapItem{Key: key, Value: v})
	}

	return items, nil
}

// Components is the ordered list of component documents of a shape.
//
// A shape created from a template shares its template's list, so
// components attached to either are visible through both.
type Components struct {
	items []*Document
}

// Append adds a component document.
func (c *Components) Append(doc *Document) { c.items = append(c.items, doc) }

// Len returns the number of components.
func (c *Components) Len() int {
	if c == nil {
		return 0
	}

	return len(c.items)
}

// Items returns the component documents.
func (c *Components) Items() []*Document {
	if c == nil {
		return nil
	}

	return slices.Clone(c.items)
}

// MarshalYAML implements [yaml.InterfaceMarshaler].
func (c *Components) MarshalYAML() (any, error) {
	if c == nil {
		return []*Document{}, nil
	}

	return c.items, nil
}

// contains reports whether list is reachable from doc.
func (d *Document) contains(list *Components, seen map[*Document]bool) bool {
	if d == nil || seen[d] {
		return false
	}

	seen[d] = true

	for _, v := range d.vals {
		switch x := v.(type) {
		case *Components:
			if x == list {
				return true
			}

			for _, item := range x.items {
				if item.contains(list, seen) {
					return true
				}
			}

		case *Document:
			if x.contains(list, seen) {
				return true
			}
		}
	}

	return false
}
