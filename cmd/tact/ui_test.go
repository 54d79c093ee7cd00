package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lyndonlyu/tact/internal/config"
	"github.com/lyndonlyu/tact/internal/session"
	"github.com/lyndonlyu/tact/internal/tokenizer/tokenizertest"
)

func newTestUI(t *testing.T) *tactUI {
	t.Helper()
	modelsCSV = ""
	logger := zaptest.NewLogger(t)
	env := &app{
		cfg:    config.DefaultIn(t.TempDir()),
		logger: logger,
		session: session.New(tokenizertest.New(nil, "cl100k_base", "p50k_base"),
			session.WithLogger(logger)),
	}
	return newTactUI(env)
}

func frontPage(t *tactUI) string {
	name, _ := t.pages.GetFrontPage()
	return name
}

func TestUIStartsOnDefaults(t *testing.T) {
	ui := newTestUI(t)
	_, current := ui.models.GetCurrentOption()
	assert.Equal(t, "GPT-3.5-turbo", current)
	assert.Equal(t, "Token Count: 0", ui.countView.GetText(true))
	assert.Equal(t, pageMain, frontPage(ui))
}

func TestUICountTokens(t *testing.T) {
	ui := newTestUI(t)
	ui.input.SetText("one two three", true)
	ui.countTokens()

	assert.Equal(t, "Token Count: 3", ui.countView.GetText(true))
	assert.Equal(t, pageMain, frontPage(ui), "a successful count shows no dialog")
}

func TestUICountEmptyShowsWarning(t *testing.T) {
	ui := newTestUI(t)
	ui.countTokens()

	assert.Equal(t, pageNotice, frontPage(ui))
	assert.Equal(t, 0, ui.env.session.Count())

	ui.closePage(pageNotice)
	assert.Equal(t, pageMain, frontPage(ui))
}

func TestUISelectModel(t *testing.T) {
	ui := newTestUI(t)
	ui.models.SetCurrentOption(1)
	assert.Equal(t, "GPT-4", ui.env.session.Selected())
}

func TestUIStartupImportsCSV(t *testing.T) {
	ui := newTestUI(t)
	csv := filepath.Join(t.TempDir(), "models.csv")
	require.NoError(t, os.WriteFile(csv, []byte("model_name,encoding_name\nalpha,p50k_base\nbeta,cl100k_base\n"), 0644))
	ui.env.cfg.Models.CSV = csv

	ui.startup()

	assert.Equal(t, []string{"alpha", "beta"}, ui.env.session.Models())
	_, current := ui.models.GetCurrentOption()
	assert.Equal(t, "alpha", current)
	assert.Equal(t, pageNotice, frontPage(ui))
}

func TestUIStartupWithoutCSVShowsNothing(t *testing.T) {
	ui := newTestUI(t)
	ui.startup()
	assert.Equal(t, pageMain, frontPage(ui))
}

func TestUIPromptPath(t *testing.T) {
	ui := newTestUI(t)
	var got string
	ui.promptPath("Save Token Count", "out.txt", func(path string) { got = path })
	assert.Equal(t, pagePrompt, frontPage(ui))

	ui.closePage(pagePrompt)
	assert.Equal(t, pageMain, frontPage(ui))
	assert.Empty(t, got)
}

func TestUIShowAbout(t *testing.T) {
	ui := newTestUI(t)
	ui.showAbout()
	assert.Equal(t, pageAbout, frontPage(ui))
}
