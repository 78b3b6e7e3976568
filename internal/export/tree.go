// Package export serializes a report as structured JSON, a single-row CSV
// and a key/value Parquet file.
package export

import (
	"bytes"

	"github.com/lehigh-university-libraries/skyreport/internal/metadata"
	"github.com/lehigh-university-libraries/skyreport/internal/report"
)

// Top-level keys of an exported report, in output order.
const (
	KeyBasic        = "basic"
	KeyCapture      = "capture"
	KeyAstronomical = "astronomical"
	KeyRawMetadata  = "rawMetadata"
)

// Element is either a Leaf or a Node.
type Element interface {
	element()
}

// Leaf holds a scalar or an opaque list.
type Leaf struct {
	Value metadata.Value
}

// Field is one keyed child of a Node.
type Field struct {
	Key     string
	Element Element
}

// Node is an ordered mapping.
type Node []Field

func (Leaf) element() {}
func (Node) element() {}

// MarshalJSON writes the node as an object, keeping field order.
func (n Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range n {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := metadata.String(f.Key).MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		var val []byte
		switch e := f.Element.(type) {
		case Node:
			val, err = e.MarshalJSON()
		case Leaf:
			val, err = e.Value.MarshalJSON()
		default:
			val = []byte("null")
		}
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FromReport builds the export tree: the three sections in label order, then
// the raw metadata in sorted key order.
func FromReport(r *report.Report) Node {
	return Node{
		{Key: KeyBasic, Element: sectionNode(r.Basic)},
		{Key: KeyCapture, Element: sectionNode(r.Capture)},
		{Key: KeyAstronomical, Element: sectionNode(r.Astronomical)},
		{Key: KeyRawMetadata, Element: rawNode(r.Raw)},
	}
}

func sectionNode(s report.Section) Node {
	n := make(Node, 0, len(s))
	for _, e := range s {
		n = append(n, Field{Key: e.Label, Element: Leaf{Value: metadata.String(e.Value)}})
	}
	return n
}

func rawNode(raw metadata.Raw) Node {
	n := make(Node, 0, len(raw))
	for _, k := range raw.Keys() {
		n = append(n, Field{Key: k, Element: Leaf{Value: raw[k]}})
	}
	return n
}

// Pair is one flattened key and its tabular text.
type Pair struct {
	Key   string
	Value string
}

// Flatten walks n depth first, joining nested keys with ".". Lists stay
// opaque and render as comma-joined text; null renders empty.
func Flatten(n Node) []Pair {
	var pairs []Pair
	flatten("", n, &pairs)
	return pairs
}

func flatten(prefix string, n Node, acc *[]Pair) {
	for _, f := range n {
		key := f.Key
		if prefix != "" {
			key = prefix + "." + f.Key
		}
		switch e := f.Element.(type) {
		case Node:
			flatten(key, e, acc)
		case Leaf:
			*acc = append(*acc, Pair{Key: key, Value: e.Value.Text()})
		default:
			*acc = append(*acc, Pair{Key: key})
		}
	}
}
