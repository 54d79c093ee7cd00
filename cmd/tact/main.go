package main

import (
	"os"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var (
	configPath string
	modelsCSV  string
)

var rootCmd = &cobra.Command{
	Use:   "tact",
	Short: "TACT - Token Analysis and Counting Tool",
	Long: "TACT counts the tokens a prompt costs before you submit it. " +
		"Run without a subcommand to open the interactive counter.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runUI,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("tact v%s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.tact/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&modelsCSV, "models-csv", "", "import model/encoding mappings from this CSV at startup")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}
