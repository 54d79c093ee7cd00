package main

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"

	"github.com/lyndonlyu/tact/internal/clipboard"
	"github.com/lyndonlyu/tact/internal/session"
)

const (
	pageMain   = "main"
	pagePrompt = "prompt"
	pageNotice = "notice"
	pageAbout  = "about"

	defaultSaveName = "token_count.txt"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive token counter",
	RunE:  runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, args []string) error {
	env, err := bootstrap("ui", clipboard.NewOSC52(nil))
	if err != nil {
		return err
	}
	defer env.close()

	t := newTactUI(env)
	t.startup()
	return t.run()
}

// tactUI is the single window of the interactive counter. Every handler
// runs on the tview event goroutine.
type tactUI struct {
	app   *tview.Application
	pages *tview.Pages
	main  *tview.Flex

	input     *tview.TextArea
	models    *tview.DropDown
	countView *tview.TextView
	hints     *tview.TextView

	env *app
}

func newTactUI(env *app) *tactUI {
	t := &tactUI{env: env}
	t.app = tview.NewApplication()

	t.input = tview.NewTextArea().
		SetPlaceholder("Type or paste the prompt to count...")
	t.input.SetBorder(true).SetTitle(" Prompt ")

	t.models = tview.NewDropDown().
		SetLabel("Model: ").
		SetFieldWidth(28)

	t.countView = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignRight)

	t.hints = tview.NewTextView().SetDynamicColors(true)
	t.hints.SetText("[gray]^O load csv  ^T count  ^Y copy  ^S save  F1 about  ^Q quit[-]")

	buttons := tview.NewFlex().
		AddItem(tview.NewButton("Load Models CSV").SetSelectedFunc(t.loadModels), 0, 1, false).
		AddItem(nil, 1, 0, false).
		AddItem(tview.NewButton("Count Tokens").SetSelectedFunc(t.countTokens), 0, 1, false).
		AddItem(nil, 1, 0, false).
		AddItem(tview.NewButton("Copy Count").SetSelectedFunc(t.copyCount), 0, 1, false).
		AddItem(nil, 1, 0, false).
		AddItem(tview.NewButton("Save Count").SetSelectedFunc(t.saveCount), 0, 1, false)

	top := tview.NewFlex().
		AddItem(t.models, 0, 1, false).
		AddItem(t.countView, 20, 0, false)

	t.main = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(top, 1, 0, false).
		AddItem(t.input, 0, 1, true).
		AddItem(buttons, 1, 0, false).
		AddItem(t.hints, 1, 0, false)

	t.pages = tview.NewPages().AddPage(pageMain, t.main, true, true)

	t.refreshModels()
	t.refreshCount()
	t.setupInputCapture()
	return t
}

func (t *tactUI) run() error {
	return t.app.SetRoot(t.pages, true).EnableMouse(true).Run()
}

// startup imports the startup CSV and applies the default model.
func (t *tactUI) startup() {
	n := t.env.session.Do("load models", t.env.prepare)
	t.refreshModels()
	if n.Title != "" {
		t.showNotice(n)
	}
}

func (t *tactUI) setupInputCapture() {
	t.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlQ {
			t.app.Stop()
			return nil
		}
		if front, _ := t.pages.GetFrontPage(); front != pageMain {
			return event
		}

		switch event.Key() {
		case tcell.KeyCtrlO:
			t.loadModels()
			return nil
		case tcell.KeyCtrlT:
			t.countTokens()
			return nil
		case tcell.KeyCtrlY:
			t.copyCount()
			return nil
		case tcell.KeyCtrlS:
			t.saveCount()
			return nil
		case tcell.KeyF1:
			t.showAbout()
			return nil
		case tcell.KeyTab:
			if t.input.HasFocus() {
				t.app.SetFocus(t.models)
			} else {
				t.app.SetFocus(t.input)
			}
			return nil
		}
		return event
	})
}

// refreshModels rebuilds the dropdown from the registry and marks the
// session's selection.
func (t *tactUI) refreshModels() {
	s := t.env.session
	names := s.Models()
	t.models.SetOptions(names, func(text string, _ int) {
		if text != "" && text != s.Selected() {
			_ = s.Select(text)
		}
	})
	for i, name := range names {
		if name == s.Selected() {
			t.models.SetCurrentOption(i)
			return
		}
	}
	t.models.SetCurrentOption(-1)
}

func (t *tactUI) refreshCount() {
	t.countView.SetText("[green::b]" + tview.Escape(t.env.session.CountLabel()) + "[-:-:-]")
}

func (t *tactUI) countTokens() {
	s := t.env.session
	n := s.Do("count tokens", func() (session.Notice, error) {
		_, err := s.CountTokens(t.input.GetText())
		return session.Notice{}, err
	})
	t.refreshCount()
	if n.Title != "" {
		t.showNotice(n)
	}
}

func (t *tactUI) copyCount() {
	t.showNotice(t.env.session.Do("copy count", t.env.session.Copy))
}

func (t *tactUI) loadModels() {
	t.promptPath("Load Models CSV", t.env.startupCSV(), func(path string) {
		n := t.env.session.Do("load models", func() (session.Notice, error) {
			return t.env.session.ImportCSV(path)
		})
		t.refreshModels()
		t.showNotice(n)
	})
}

func (t *tactUI) saveCount() {
	t.promptPath("Save Token Count", defaultSaveName, func(path string) {
		t.showNotice(t.env.session.Do("save count", func() (session.Notice, error) {
			return t.env.session.Save(path)
		}))
	})
}

// promptPath asks for a file path. Cancelling, or submitting an empty path,
// returns to the main page without calling submit.
func (t *tactUI) promptPath(title, initial string, submit func(path string)) {
	form := tview.NewForm().
		AddInputField("Path", initial, 48, nil, nil)
	field := form.GetFormItem(0).(*tview.InputField)

	done := func(ok bool) {
		path := strings.TrimSpace(field.GetText())
		t.closePage(pagePrompt)
		if ok && path != "" {
			submit(path)
		}
	}
	form.AddButton("OK", func() { done(true) }).
		AddButton("Cancel", func() { done(false) }).
		SetCancelFunc(func() { done(false) })
	form.SetBorder(true).SetTitle(" " + title + " ")

	t.pages.AddPage(pagePrompt, centered(form, 60, 7), true, true)
	t.app.SetFocus(form)
}

func (t *tactUI) showNotice(n session.Notice) {
	modal := tview.NewModal().
		SetText(n.Title + "\n\n" + n.Message).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(int, string) { t.closePage(pageNotice) })
	switch n.Level {
	case session.LevelWarning:
		modal.SetBackgroundColor(tcell.ColorOlive)
	case session.LevelError:
		modal.SetBackgroundColor(tcell.ColorMaroon)
	}
	t.pages.AddPage(pageNotice, modal, true, true)
	t.app.SetFocus(modal)
}

func (t *tactUI) showAbout() {
	text, err := renderAbout(glamour.WithStandardStyle("dark"))
	if err != nil {
		t.showNotice(session.Notice{Level: session.LevelError, Title: "Error", Message: err.Error()})
		return
	}
	view := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetText(tview.TranslateANSI(text))
	view.SetDoneFunc(func(tcell.Key) { t.closePage(pageAbout) })
	view.SetBorder(true).SetTitle(" About TACT (Esc to close) ")

	t.pages.AddPage(pageAbout, centered(view, 80, 24), true, true)
	t.app.SetFocus(view)
}

func (t *tactUI) closePage(name string) {
	t.pages.RemovePage(name)
	t.app.SetFocus(t.input)
}

// centered places p in the middle of the screen at the given size.
func centered(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}
