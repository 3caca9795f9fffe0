package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oehrl/arbor/cable"
	"github.com/oehrl/arbor/internal/diagram"
)

var inspectImagePath string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Render ASCII (and optionally image) diagrams of the demo cell's CV profile",
	Run:   runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectImagePath, "image", "", "also export the diameter profile to this image file (.png/.svg/.pdf)")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) {
	disc, _, err := cable.Compile(demoRecipe())
	if err != nil {
		fmt.Printf("compile failed: %v\n", err)
		os.Exit(1)
	}

	for cell := 0; cell < disc.NumCells(); cell++ {
		profile := diagram.ProfileOf(disc, cell)
		fmt.Println(diagram.DrawSummaryBox(fmt.Sprintf("cell %d", cell), diagram.CellSummaryLines(profile)))
		fmt.Println(diagram.DrawDiameterSparkline(profile))
		fmt.Println(diagram.DrawAreaSparkline(profile))

		if inspectImagePath != "" {
			if err := diagram.ExportDiameterProfile(profile, inspectImagePath); err != nil {
				fmt.Printf("image export failed: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("wrote %s\n", inspectImagePath)
		}
	}
}
