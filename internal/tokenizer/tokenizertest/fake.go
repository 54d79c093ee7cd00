// Package tokenizertest provides an in-memory tokenizer.Library for tests
// that must not depend on real BPE tables.
package tokenizertest

import (
	"strings"

	"github.com/lyndonlyu/tact/internal/apperr"
	"github.com/lyndonlyu/tact/internal/tokenizer"
)

// Library knows a fixed set of encodings and native model names.
// Its encodings split text on whitespace, one token per field.
type Library struct {
	Models    map[string]string // native model name -> encoding name
	Encodings map[string]bool

	ModelCalls    []string
	EncodingCalls []string
}

// New returns a Library with the given native models and encodings.
func New(models map[string]string, encodings ...string) *Library {
	l := &Library{Models: models, Encodings: make(map[string]bool)}
	for _, e := range encodings {
		l.Encodings[e] = true
	}
	return l
}

func (l *Library) EncodingForModel(model string) (tokenizer.Encoding, error) {
	l.ModelCalls = append(l.ModelCalls, model)
	name, ok := l.Models[model]
	if !ok {
		return nil, apperr.New(apperr.KindLookup, "fake.encoding_for_model", "no native encoding for model %q", model)
	}
	return l.GetEncoding(name)
}

func (l *Library) GetEncoding(name string) (tokenizer.Encoding, error) {
	l.EncodingCalls = append(l.EncodingCalls, name)
	if !l.Encodings[name] {
		return nil, apperr.New(apperr.KindLookup, "fake.get_encoding", "unknown encoding %q", name)
	}
	return Encoding{name: name}, nil
}

type Encoding struct {
	name string
}

func (e Encoding) Name() string { return e.name }

func (e Encoding) Encode(text string) []int {
	fields := strings.Fields(text)
	ids := make([]int, len(fields))
	for i, f := range fields {
		ids[i] = len(f)
	}
	return ids
}
