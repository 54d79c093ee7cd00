package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

const aboutMarkdown = `# TACT

*Version ` + version + `*

**Token Analysis and Counting Tool.** TACT lets you weigh token strategies
before you submit a prompt.

| Action | Key | Command |
|---|---|---|
| Load Models CSV | Ctrl+O | ` + "`tact --models-csv file.csv`" + ` |
| Count Tokens | Ctrl+T | ` + "`tact count`" + ` |
| Copy Count | Ctrl+Y | ` + "`tact count --copy`" + ` |
| Save Count | Ctrl+S | ` + "`tact count --save out.txt`" + ` |
| About | F1 | ` + "`tact about`" + ` |
| Quit | Ctrl+Q | |

A models CSV needs the columns ` + "`model_name`" + ` and ` + "`encoding_name`" + `.

© 2024 KookyOstrich. Licensed under the MIT License.
`

var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "Show what TACT is and how to drive it",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := renderAbout(glamour.WithAutoStyle())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), s)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(aboutCmd)
}

// renderAbout renders the about text as ANSI-styled terminal output.
func renderAbout(style glamour.TermRendererOption) (string, error) {
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(72))
	if err != nil {
		return "", fmt.Errorf("about: renderer: %w", err)
	}
	out, err := r.Render(aboutMarkdown)
	if err != nil {
		return "", fmt.Errorf("about: render: %w", err)
	}
	return out, nil
}
