// Command arborcc is a demo/debugging front end for the cable-cell
// compiler: it builds a small hard-coded recipe, compiles it, and
// prints or renders the resulting discretization and mechanism
// layout. It is not part of the compiler's public API (cable.Compile
// is), the way gorcb's CLI is a thin wrapper over internal/beam and
// internal/section.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oehrl/arbor/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "arborcc",
	Short: "Cable-cell discretization and mechanism-layout compiler",
	Long: `arborcc - cable-cell discretization & mechanism layout compiler

A CLI front end for the finite-volume discretizer and mechanism-layout
compiler at the heart of a cable-equation neuron simulator. Given a
morphology and a set of paintings/placements, it builds the flat
control-volume arrays and mechanism configs a time-stepping integrator
would execute against.

This tool ships a demo recipe for inspection; production use is via
the cable package's Compile function.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   arborcc v%-47s║\n", version.Version)
		fmt.Println("  ║   Cable-cell discretization & mechanism layout compiler  ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Use 'arborcc --help' to see available commands.")
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
