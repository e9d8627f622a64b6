package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "wellmix",
	Short: "Drinking-water source attribution from urinary arsenic",
	Long: "Wellmix calibrates a mass-balance model by regressing a urinary arsenic\n" +
		"biomarker on well-water concentrations, then solves per-individual\n" +
		"drinking-water source fractions with propagated uncertainties.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
