package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ExportDiameterProfile plots a cell's CV diameter profile (CV index
// on X, diameter in um on Y) and saves it to filename; the format is
// taken from the extension (.png, .svg, .pdf), defaulting to PNG.
func ExportDiameterProfile(p CellProfile, filename string) error {
	plt := plot.New()
	plt.Title.Text = fmt.Sprintf("Cell %d: CV diameter profile", p.CellIndex)
	plt.X.Label.Text = "CV index"
	plt.Y.Label.Text = "Diameter (um)"

	pts := make(plotter.XYs, len(p.DiamUm))
	for i, d := range p.DiamUm {
		pts[i] = plotter.XY{X: float64(i), Y: d}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = color.RGBA{R: 0, G: 100, B: 180, A: 255}
	plt.Add(line)

	markers, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	markers.GlyphStyle.Color = color.RGBA{R: 0, G: 100, B: 180, A: 255}
	markers.GlyphStyle.Radius = vg.Points(2)
	plt.Add(markers)

	return save(plt, filename)
}

// ExportAreaProfile plots a cell's CV membrane area profile.
func ExportAreaProfile(p CellProfile, filename string) error {
	plt := plot.New()
	plt.Title.Text = fmt.Sprintf("Cell %d: CV membrane area profile", p.CellIndex)
	plt.X.Label.Text = "CV index"
	plt.Y.Label.Text = "Area (um^2)"

	bars, err := plotter.NewBarChart(areaValues(p.AreaUm2), vg.Points(8))
	if err != nil {
		return err
	}
	bars.Color = color.RGBA{R: 100, G: 149, B: 237, A: 200}
	plt.Add(bars)

	return save(plt, filename)
}

func areaValues(area []float64) plotter.Values {
	v := make(plotter.Values, len(area))
	copy(v, area)
	return v
}

func save(plt *plot.Plot, filename string) error {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	width := 8 * vg.Inch
	height := 5 * vg.Inch

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return plt.Save(width, height, filename)
	default:
		return plt.Save(width, height, filename+".png")
	}
}
