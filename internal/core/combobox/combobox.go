// Package combobox implements the searchable select used by forms that pick
// a related entity (agency, advertiser, campaign, seller). Filtering runs
// over an option set that was already fetched.
package combobox

import (
	"fmt"
	"strconv"
	"strings"
)

// Option is one selectable entry.
type Option struct {
	Value int64  `json:"value"`
	Label string `json:"label"`
}

// Filter returns the options whose label or decimal value contains query,
// compared case-insensitively. Order is preserved and an empty query
// returns every option.
func Filter(options []Option, query string) []Option {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Option, 0, len(options))
	for _, o := range options {
		if q == "" ||
			strings.Contains(strings.ToLower(o.Label), q) ||
			strings.Contains(strconv.FormatInt(o.Value, 10), q) {
			out = append(out, o)
		}
	}
	return out
}

// Combobox holds the typed search text and the selected value.
type Combobox struct {
	options  []Option
	query    string
	selected int64
}

// New builds a combobox over options with selected as the current value.
// Zero means nothing is selected.
func New(options []Option, selected int64) *Combobox {
	return &Combobox{options: options, selected: selected}
}

// Type replaces the search text.
func (c *Combobox) Type(query string) { c.query = query }

// Query returns the current search text.
func (c *Combobox) Query() string { return c.query }

// Visible returns the options matching the current search text.
func (c *Combobox) Visible() []Option { return Filter(c.options, c.query) }

// Choose selects the option whose value is the decimal string value and
// clears the search text.
func (c *Combobox) Choose(value string) error {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return fmt.Errorf("combobox: invalid value %q: %w", value, err)
	}
	c.selected = v
	c.query = ""
	return nil
}

// Selected returns the selected value and whether anything is selected.
func (c *Combobox) Selected() (int64, bool) { return c.selected, c.selected != 0 }

// SelectedLabel returns the label of the selected option, or "" when the
// selection is empty or not among the options.
func (c *Combobox) SelectedLabel() string {
	for _, o := range c.options {
		if o.Value == c.selected {
			return o.Label
		}
	}
	return ""
}
