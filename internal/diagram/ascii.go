// Package diagram renders a compiled cell for inspection: ASCII
// sparklines for quick terminal feedback (guptarohit/asciigraph,
// matching the teacher's own "always render an ASCII view first"
// pattern), and image export of the same profiles via gonum/plot.
package diagram

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/oehrl/arbor/internal/fvm"
)

// CellProfile is the subset of a compiled discretization needed to
// render one cell: its CV diameter and area profiles, in CV order.
type CellProfile struct {
	CellIndex int
	DiamUm    []float64
	AreaUm2   []float64
	NCV       int
}

// ProfileOf extracts cell i's CV profile from a compiled
// discretization.
func ProfileOf(d *fvm.Discretization, cell int) CellProfile {
	lo, hi := d.CVRange(cell)
	return CellProfile{
		CellIndex: cell,
		DiamUm:    append([]float64(nil), d.DiamUm[lo:hi]...),
		AreaUm2:   append([]float64(nil), d.CVArea[lo:hi]...),
		NCV:       hi - lo,
	}
}

// DrawDiameterSparkline renders the cell's CV diameter profile as an
// ASCII line plot, proximal (soma) CV first.
func DrawDiameterSparkline(p CellProfile) string {
	if len(p.DiamUm) == 0 {
		return ""
	}
	graph := asciigraph.Plot(p.DiamUm,
		asciigraph.Height(12),
		asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("cell %d: CV diameter (um), %d CVs", p.CellIndex, p.NCV)),
	)
	return "\n" + graph + "\n"
}

// DrawAreaSparkline renders the cell's CV membrane area profile.
func DrawAreaSparkline(p CellProfile) string {
	if len(p.AreaUm2) == 0 {
		return ""
	}
	graph := asciigraph.Plot(p.AreaUm2,
		asciigraph.Height(12),
		asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("cell %d: CV membrane area (um^2)", p.CellIndex)),
	)
	return "\n" + graph + "\n"
}

// DrawSummaryBox renders a titled box around a set of report lines,
// in the teacher's box-drawing style.
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len(title)
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-2, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-2, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// CellSummaryLines builds the report lines DrawSummaryBox expects for
// one compiled cell.
func CellSummaryLines(p CellProfile) []string {
	var total float64
	var minD, maxD float64
	for i, a := range p.AreaUm2 {
		total += a
		if i == 0 || p.DiamUm[i] < minD {
			minD = p.DiamUm[i]
		}
		if i == 0 || p.DiamUm[i] > maxD {
			maxD = p.DiamUm[i]
		}
	}
	return []string{
		fmt.Sprintf("CVs:            %d", p.NCV),
		fmt.Sprintf("Total area:     %.2f um^2", total),
		fmt.Sprintf("Diameter range: %.3f - %.3f um", minD, maxD),
	}
}
