// Package session owns the mutable state of one tact session (the model
// registry, the selected model and the displayed token count) and
// implements every user action against it. A Session is used from a single
// goroutine; it holds no locks.
package session

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/lyndonlyu/tact/internal/apperr"
	"github.com/lyndonlyu/tact/internal/clipboard"
	"github.com/lyndonlyu/tact/internal/history"
	"github.com/lyndonlyu/tact/internal/modelcsv"
	"github.com/lyndonlyu/tact/internal/registry"
	"github.com/lyndonlyu/tact/internal/tokenizer"
)

// NoSelection is shown in place of a model name when nothing is selected.
const NoSelection = "Select a model"

const countPrefix = "Token Count: "

// Recorder stores successful counts.
type Recorder interface {
	Insert(r history.Record) (history.Record, error)
}

type Session struct {
	registry *registry.Registry
	lib      tokenizer.Library
	selected string
	count    int
	encoding string

	logger   *zap.Logger
	recorder Recorder
	clip     clipboard.Clipboard
	source   string
}

type Option func(*Session)

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithRecorder enables count history.
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

func WithClipboard(c clipboard.Clipboard) Option {
	return func(s *Session) { s.clip = c }
}

// WithSource tags history records, e.g. "ui" or "cli".
func WithSource(src string) Option {
	return func(s *Session) { s.source = src }
}

// New starts a session on the default registry with its first model selected.
func New(lib tokenizer.Library, opts ...Option) *Session {
	s := &Session{
		registry: registry.Default(),
		lib:      lib,
		logger:   zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	s.resetSelection()
	return s
}

func (s *Session) Registry() *registry.Registry { return s.registry }

// Models returns the selectable model names in display order.
func (s *Session) Models() []string { return s.registry.Names() }

// Selected returns the selected model, or "" when none is selected.
func (s *Session) Selected() string { return s.selected }

// Count returns the displayed token count.
func (s *Session) Count() int { return s.count }

// Encoding returns the encoding that produced the displayed count.
func (s *Session) Encoding() string { return s.encoding }

// CountLabel renders the displayed count the way it is shown and saved.
func (s *Session) CountLabel() string {
	return countPrefix + strconv.Itoa(s.count)
}

// CopyValue is the bare number placed on the clipboard.
func (s *Session) CopyValue() string {
	return strconv.Itoa(s.count)
}

func (s *Session) resetSelection() {
	s.selected = ""
	if names := s.registry.Names(); len(names) > 0 {
		s.selected = names[0]
	}
}

// Select makes model the current selection. It must be a registry key.
func (s *Session) Select(model string) error {
	if model == "" || !s.registry.Contains(model) {
		return apperr.New(apperr.KindUserInput, "session.select", "select a valid model")
	}
	s.selected = model
	s.logger.Debug("model selected", zap.String("model", model))
	return nil
}

// ImportCSV replaces the registry with the models in the CSV file at path
// and selects the first of them. On failure nothing changes.
func (s *Session) ImportCSV(path string) (Notice, error) {
	table, err := modelcsv.ReadFile(path)
	if err != nil {
		return Notice{}, err
	}
	return s.ImportTable(table, path)
}

// ImportTable is ImportCSV for an already parsed table; source names it in
// logs and notices.
func (s *Session) ImportTable(t registry.Table, source string) (Notice, error) {
	res, err := s.registry.Load(t, s.lib)
	if err != nil {
		return Notice{}, err
	}
	s.resetSelection()

	s.logger.Info("models imported",
		zap.String("source", source),
		zap.Int("loaded", res.Loaded),
		zap.Int("dropped", res.Dropped),
		zap.Int("warnings", len(res.Warnings)))

	n := Notice{
		Level:   LevelInfo,
		Title:   "Success",
		Message: fmt.Sprintf("Models CSV loaded: %d models.", res.Loaded),
	}
	if len(res.Warnings) > 0 {
		n.Level = LevelWarning
		var b strings.Builder
		b.WriteString(n.Message)
		for _, w := range res.Warnings {
			b.WriteString("\n")
			b.WriteString(w.String())
			s.logger.Warn("model import warning",
				zap.Int("line", w.Line),
				zap.String("model", w.ModelName),
				zap.String("encoding", w.EncodingName),
				zap.String("reason", w.Reason))
		}
		n.Message = b.String()
	}
	return n, nil
}

// CountTokens counts the tokens of text, trimmed, with the selected model's
// encoding and makes the result the displayed count. On failure the
// displayed count is left as it was.
func (s *Session) CountTokens(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, apperr.New(apperr.KindUserInput, "session.count", "enter some text")
	}
	if s.selected == "" || !s.registry.Contains(s.selected) {
		return 0, apperr.New(apperr.KindUserInput, "session.count", "select a valid model")
	}

	enc, err := s.registry.Resolve(s.selected, s.lib)
	if err != nil {
		return 0, err
	}
	n := tokenizer.Count(enc, text)
	s.count = n
	s.encoding = enc.Name()

	s.logger.Info("tokens counted",
		zap.String("model", s.selected),
		zap.String("encoding", s.encoding),
		zap.Int("tokens", n))
	s.record(text, n)
	return n, nil
}

func (s *Session) record(text string, tokens int) {
	if s.recorder == nil {
		return
	}
	_, err := s.recorder.Insert(history.Record{
		Model:    s.selected,
		Encoding: s.encoding,
		Tokens:   tokens,
		Chars:    utf8.RuneCountInString(text),
		Source:   s.source,
	})
	if err != nil {
		s.logger.Warn("history insert failed", zap.Error(err))
	}
}

// Copy places the displayed count on the clipboard.
func (s *Session) Copy() (Notice, error) {
	if s.clip == nil {
		return Notice{}, apperr.New(apperr.KindIO, "session.copy", "no clipboard available")
	}
	v := s.CopyValue()
	if err := s.clip.Copy(v); err != nil {
		return Notice{}, apperr.Wrap(apperr.KindIO, "session.copy", err)
	}
	return Notice{Level: LevelInfo, Title: "Copied", Message: fmt.Sprintf("Copied token count %s to the clipboard.", v)}, nil
}

// Save writes the displayed count to path as a single "Token Count: N" line.
// A zero count is refused since there is nothing to save.
func (s *Session) Save(path string) (Notice, error) {
	if s.count == 0 {
		return Notice{}, apperr.New(apperr.KindUserInput, "session.save", "no token count to save")
	}
	if strings.TrimSpace(path) == "" {
		return Notice{}, apperr.New(apperr.KindUserInput, "session.save", "choose a file to save to")
	}
	if err := os.WriteFile(path, []byte(s.CountLabel()+"\n"), 0644); err != nil {
		return Notice{}, &apperr.Error{Kind: apperr.KindIO, Op: "session.save", Msg: "write " + path, Err: err}
	}
	s.logger.Info("token count saved", zap.String("path", path), zap.Int("tokens", s.count))
	return Notice{Level: LevelInfo, Title: "Saved", Message: fmt.Sprintf("Saved token count %d to %s.", s.count, path)}, nil
}
