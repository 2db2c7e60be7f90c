package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/gowbeam/internal/section"
)

// ExportShapeDiagram exports a dimensioned W-section drawing to an image file.
// The format follows the extension (.png, .svg, .pdf); anything else is
// saved as PNG with ".png" appended.
func ExportShapeDiagram(data ShapeDiagramData, filename string) error {
	if len(data.Vertices) < 3 {
		return fmt.Errorf("section outline needs at least 3 vertices, got %d", len(data.Vertices))
	}

	p := plot.New()
	p.Title.Text = "W-Section"
	if data.Name != "" {
		p.Title.Text = data.Name
	}
	p.X.Label.Text = "Width (in)"
	p.Y.Label.Text = "Depth (in)"

	outline := make(plotter.XYs, len(data.Vertices))
	for i, v := range data.Vertices {
		outline[i] = plotter.XY{X: v.X, Y: v.Y}
	}

	body, err := plotter.NewPolygon(outline)
	if err != nil {
		return err
	}
	body.Color = color.RGBA{R: 176, G: 196, B: 222, A: 255}
	body.LineStyle.Width = vg.Points(2)
	body.LineStyle.Color = color.Black
	p.Add(body)

	minX, maxX, minY, maxY := section.Bounds(data.Vertices)
	width, depth := maxX-minX, maxY-minY
	midX, midY := (minX+maxX)/2, (minY+maxY)/2
	margin := marginFraction * width

	// Principal axes through the centroid
	xAxis, err := plotter.NewLine(plotter.XYs{
		{X: minX - margin, Y: midY},
		{X: maxX + margin, Y: midY},
	})
	if err != nil {
		return err
	}
	xAxis.LineStyle.Width = vg.Points(1)
	xAxis.LineStyle.Color = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	xAxis.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(xAxis)

	yAxis, err := plotter.NewLine(plotter.XYs{
		{X: midX, Y: minY - margin},
		{X: midX, Y: maxY + margin},
	})
	if err != nil {
		return err
	}
	yAxis.LineStyle.Width = vg.Points(1)
	yAxis.LineStyle.Color = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	yAxis.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(yAxis)

	// Flange centroids, ho apart
	centroids, err := plotter.NewScatter(plotter.XYs{
		{X: midX, Y: minY + data.Tf/2},
		{X: midX, Y: maxY - data.Tf/2},
	})
	if err != nil {
		return err
	}
	centroids.GlyphStyle.Color = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	centroids.GlyphStyle.Radius = vg.Points(4)
	centroids.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(centroids)

	labels := []struct {
		x, y float64
		text string
	}{
		{maxX + margin, midY, "x"},
		{midX, maxY + margin, "y"},
		{minX + 0.05*width, maxY + margin/2, fmt.Sprintf("bf=%.2fin", data.Bf)},
		{maxX + margin/2, minY + 0.75*depth, fmt.Sprintf("d=%.2fin", data.D)},
		{maxX + margin/2, maxY - data.Tf, fmt.Sprintf("tf=%.3fin", data.Tf)},
		{midX + data.Tw, minY + 0.35*depth, fmt.Sprintf("tw=%.3fin", data.Tw)},
	}
	if data.Ho > 0 {
		labels = append(labels, struct {
			x, y float64
			text string
		}{midX + data.Tw, minY + 0.25*depth, fmt.Sprintf("ho=%.2fin", data.Ho)})
	}

	for _, lbl := range labels {
		l, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: lbl.x, Y: lbl.y}},
			Labels: []string{lbl.text},
		})
		if err != nil {
			return err
		}
		p.Add(l)
	}

	p.X.Min, p.X.Max, p.Y.Min, p.Y.Max = window(data.Vertices)

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	size := 6 * vg.Inch

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
		return p.Save(size, size, filename)
	default:
		return p.Save(size, size, filename+".png")
	}
}

const marginFraction = 0.15

// window returns square axis limits around the outline so the drawing is
// not distorted
func window(vertices []section.Point) (xMin, xMax, yMin, yMax float64) {
	minX, maxX, minY, maxY := section.Bounds(vertices)
	midX, midY := (minX+maxX)/2, (minY+maxY)/2

	span := math.Max(maxX-minX, maxY-minY) + 4*marginFraction*(maxX-minX)
	return midX - span/2, midX + span/2, midY - span/2, midY + span/2
}
