package registry

import (
	"fmt"
	"strings"

	"github.com/lyndonlyu/tact/internal/apperr"
	"github.com/lyndonlyu/tact/internal/tokenizer"
)

// Required import columns.
const (
	ColumnModel    = "model_name"
	ColumnEncoding = "encoding_name"
)

// ModelEntry maps a model name to a tokenizer encoding name.
type ModelEntry struct {
	ModelName    string `json:"model_name"`
	EncodingName string `json:"encoding_name"`
}

// DefaultEntries is the registry a session starts with.
var DefaultEntries = []ModelEntry{
	{ModelName: "GPT-3.5-turbo", EncodingName: "cl100k_base"},
	{ModelName: "GPT-4", EncodingName: "cl100k_base"},
}

// Table holds raw import records before schema validation.
type Table struct {
	Header []string
	Rows   [][]string
}

// Warning is a non-fatal finding collected while loading a table.
type Warning struct {
	Line         int // 1-based line in the source, header is line 1
	ModelName    string
	EncodingName string
	Reason       string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s (model %q, encoding %q)", w.Line, w.Reason, w.ModelName, w.EncodingName)
}

// LoadResult summarises a successful Load.
type LoadResult struct {
	Loaded   int // entries in the new registry
	Dropped  int // rows skipped for a missing model_name or encoding_name
	Warnings []Warning
}

// Registry is an ordered set of model entries keyed by model name.
type Registry struct {
	entries []ModelEntry
	index   map[string]int
}

// Default returns a registry holding DefaultEntries.
func Default() *Registry {
	r, _ := build(DefaultEntries)
	return r
}

// New builds a registry from entries. A repeated model name keeps its first
// position and takes the last encoding.
func New(entries []ModelEntry) *Registry {
	r, _ := build(entries)
	return r
}

func build(entries []ModelEntry) (*Registry, []int) {
	r := &Registry{index: make(map[string]int, len(entries))}
	var dups []int
	for i, e := range entries {
		if pos, ok := r.index[e.ModelName]; ok {
			r.entries[pos].EncodingName = e.EncodingName
			dups = append(dups, i)
			continue
		}
		r.index[e.ModelName] = len(r.entries)
		r.entries = append(r.entries, e)
	}
	return r, dups
}

// Load replaces the registry's entries with the rows of t. It fails without
// touching the registry when a required column is missing or no row carries
// both required values. Rows whose encoding the library does not recognise
// are kept and reported as warnings.
func (r *Registry) Load(t Table, lib tokenizer.Library) (LoadResult, error) {
	modelCol, encCol := -1, -1
	for i, h := range t.Header {
		switch strings.TrimSpace(h) {
		case ColumnModel:
			if modelCol < 0 {
				modelCol = i
			}
		case ColumnEncoding:
			if encCol < 0 {
				encCol = i
			}
		}
	}
	if modelCol < 0 || encCol < 0 {
		return LoadResult{}, apperr.New(apperr.KindValidation, "registry.load",
			"CSV must contain %q and %q columns", ColumnModel, ColumnEncoding)
	}

	var (
		res     LoadResult
		entries []ModelEntry
		lines   []int
	)
	for i, row := range t.Rows {
		model := cell(row, modelCol)
		enc := cell(row, encCol)
		if model == "" || enc == "" {
			res.Dropped++
			continue
		}
		entries = append(entries, ModelEntry{ModelName: model, EncodingName: enc})
		lines = append(lines, i+2)
	}
	if len(entries) == 0 {
		return LoadResult{}, apperr.New(apperr.KindValidation, "registry.load",
			"CSV has no rows with both %s and %s", ColumnModel, ColumnEncoding)
	}

	known := make(map[string]bool)
	for i, e := range entries {
		ok, seen := known[e.EncodingName]
		if !seen {
			_, err := lib.GetEncoding(e.EncodingName)
			ok = err == nil
			known[e.EncodingName] = ok
		}
		if !ok {
			res.Warnings = append(res.Warnings, Warning{
				Line:         lines[i],
				ModelName:    e.ModelName,
				EncodingName: e.EncodingName,
				Reason:       "invalid encoding name",
			})
		}
	}

	next, dups := build(entries)
	for _, i := range dups {
		res.Warnings = append(res.Warnings, Warning{
			Line:         lines[i],
			ModelName:    entries[i].ModelName,
			EncodingName: entries[i].EncodingName,
			Reason:       "duplicate model name, later row wins",
		})
	}

	r.entries = next.entries
	r.index = next.index
	res.Loaded = len(r.entries)
	return res, nil
}

// Resolve returns the encoding for model. Names the tokenizer knows natively
// win over the registry's mapping.
func (r *Registry) Resolve(model string, lib tokenizer.Library) (tokenizer.Encoding, error) {
	if enc, err := lib.EncodingForModel(model); err == nil {
		return enc, nil
	}
	e, ok := r.Lookup(model)
	if !ok {
		return nil, apperr.New(apperr.KindLookup, "registry.resolve",
			"unknown model %q", model)
	}
	enc, err := lib.GetEncoding(e.EncodingName)
	if err != nil {
		return nil, &apperr.Error{
			Kind: apperr.KindLookup,
			Op:   "registry.resolve",
			Msg:  fmt.Sprintf("model %q maps to unusable encoding %q", model, e.EncodingName),
			Err:  err,
		}
	}
	return enc, nil
}

// Lookup returns the entry for model.
func (r *Registry) Lookup(model string) (ModelEntry, bool) {
	i, ok := r.index[model]
	if !ok {
		return ModelEntry{}, false
	}
	return r.entries[i], true
}

func (r *Registry) Contains(model string) bool {
	_, ok := r.index[model]
	return ok
}

// Names returns model names in display order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.ModelName
	}
	return names
}

// Entries returns a copy of the entries in display order.
func (r *Registry) Entries() []ModelEntry {
	out := make([]ModelEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Registry) Len() int {
	return len(r.entries)
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
