package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/lyndonlyu/tact/internal/apperr"
	"github.com/lyndonlyu/tact/internal/clipboard"
)

var (
	countFile   string
	countModel  string
	countSave   string
	countCopy   bool
	countFormat string
)

var countCmd = &cobra.Command{
	Use:   "count [text...]",
	Short: "Count the tokens of text, a file, or stdin",
	Long: "Count tokens with the selected model's encoding. Text comes from the " +
		"arguments, else --file, else standard input.",
	RunE: runCount,
}

func init() {
	countCmd.Flags().StringVarP(&countFile, "file", "f", "", "read text from this file")
	countCmd.Flags().StringVarP(&countModel, "model", "m", "", "model to count with (default from config)")
	countCmd.Flags().StringVar(&countSave, "save", "", "write \"Token Count: N\" to this file")
	countCmd.Flags().BoolVar(&countCopy, "copy", false, "copy the count to the clipboard (OSC 52)")
	countCmd.Flags().StringVar(&countFormat, "format", "", "Output format (json)")
	rootCmd.AddCommand(countCmd)
}

type countResult struct {
	Model    string `json:"model"`
	Encoding string `json:"encoding"`
	Tokens   int    `json:"tokens"`
	Chars    int    `json:"chars"`
	SavedTo  string `json:"saved_to,omitempty"`
}

func runCount(cmd *cobra.Command, args []string) error {
	text, err := readCountInput(cmd.InOrStdin(), args, countFile)
	if err != nil {
		return err
	}

	a, err := bootstrap("cli", clipboard.NewOSC52(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	defer a.close()

	if _, err := a.prepare(); err != nil {
		return err
	}
	if countModel != "" {
		if err := a.session.Select(countModel); err != nil {
			return apperr.New(apperr.KindUserInput, "count", "model %q is not in the registry (see `tact models list`)", countModel)
		}
	}

	s := a.session
	n, err := s.CountTokens(text)
	if err != nil {
		return err
	}

	res := countResult{
		Model:    s.Selected(),
		Encoding: s.Encoding(),
		Tokens:   n,
		Chars:    utf8.RuneCountInString(strings.TrimSpace(text)),
	}
	if countSave != "" {
		if _, err := s.Save(countSave); err != nil {
			return err
		}
		res.SavedTo = countSave
	}
	if countCopy {
		notice, err := s.Copy()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), renderNotice(notice))
	}

	out := cmd.OutOrStdout()
	if countFormat == "json" {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("count: marshal: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}
	fmt.Fprintln(out, s.CountLabel())
	return nil
}

// readCountInput picks the text to count: arguments, then file, then r.
func readCountInput(r io.Reader, args []string, file string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", &apperr.Error{Kind: apperr.KindIO, Op: "count", Msg: "read " + file, Err: err}
		}
		return string(data), nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", apperr.Wrap(apperr.KindIO, "count", err)
	}
	return string(data), nil
}
