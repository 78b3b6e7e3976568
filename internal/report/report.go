// Package report assembles the basic, capture and astronomical sections shown
// for one photograph.
package report

import (
	"time"

	"github.com/lehigh-university-libraries/skyreport/internal/metadata"
	"github.com/lehigh-university-libraries/skyreport/internal/models"
)

// Entry is one labelled, already formatted value.
type Entry struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Section is an ordered list of entries. Order is construction order.
type Section []Entry

// Get returns the value stored under label.
func (s Section) Get(label string) (string, bool) {
	for _, e := range s {
		if e.Label == label {
			return e.Value, true
		}
	}
	return "", false
}

// Labels returns the labels in order.
func (s Section) Labels() []string {
	labels := make([]string, len(s))
	for i, e := range s {
		labels[i] = e.Label
	}
	return labels
}

func (s *Section) add(label, value string) {
	*s = append(*s, Entry{Label: label, Value: value})
}

// Report is immutable once built. Every label in every section carries a
// value; missing data renders as format.Unknown.
type Report struct {
	Source       models.ImageFile
	Basic        Section
	Capture      Section
	Astronomical Section
	Raw          metadata.Raw
	Fields       metadata.Fields
	BuiltAt      time.Time
}

// HasAstronomy reports whether the astronomical section holds computed values
// rather than the placeholder note.
func (r *Report) HasAstronomy() bool {
	_, placeholder := r.Astronomical.Get(LabelNote)
	return !placeholder && len(r.Astronomical) > 0
}

// BaseName is the stem export files are named after.
func (r *Report) BaseName() string {
	return r.Source.BaseName()
}
