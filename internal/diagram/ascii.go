package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexiusacademia/gowbeam/internal/section"
)

// ShapeDiagramData holds data for drawing a W-section
type ShapeDiagramData struct {
	Name string

	// Dimensions (in)
	D  float64 // overall depth
	Bf float64 // flange width
	Tf float64 // flange thickness
	Tw float64 // web thickness
	Ho float64 // distance between flange centroids

	// Outline vertices, counter-clockwise from bottom-left (in)
	Vertices []section.Point
}

const heightChars = 16

// DrawASCIIShape creates an ASCII sketch of the W-section, drawn roughly to
// scale, with its dimensions
func DrawASCIIShape(data ShapeDiagramData) string {
	var sb strings.Builder

	if data.D <= 0 || data.Bf <= 0 {
		return ""
	}

	// Terminal cells are about twice as tall as they are wide
	widthChars := int(math.Round(data.Bf / data.D * heightChars * 2))
	widthChars = clamp(widthChars, 9, 40)

	flangeRows := clamp(int(math.Round(data.Tf/data.D*heightChars)), 1, heightChars/4)
	webChars := clamp(int(math.Round(data.Tw/data.Bf*float64(widthChars))), 1, widthChars-2)
	if (widthChars-webChars)%2 != 0 {
		webChars++
	}
	side := (widthChars - webChars) / 2
	mid := heightChars / 2

	sb.WriteString("\n")
	if data.Name != "" {
		sb.WriteString(fmt.Sprintf("  %s\n", data.Name))
	}
	sb.WriteString(fmt.Sprintf("  ◄%s►\n", centered(fmt.Sprintf(" bf = %.2f in ", data.Bf), widthChars-2, "─")))

	for i := 0; i < heightChars; i++ {
		var row string
		if i < flangeRows || i >= heightChars-flangeRows {
			row = strings.Repeat("█", widthChars)
		} else {
			row = strings.Repeat(" ", side) + strings.Repeat("█", webChars) + strings.Repeat(" ", side)
		}

		var note string
		switch {
		case i == 0:
			note = fmt.Sprintf("┬  tf = %.3f in", data.Tf)
		case i == mid-1:
			note = fmt.Sprintf("│  d  = %.2f in", data.D)
		case i == mid:
			note = fmt.Sprintf("│  tw = %.3f in", data.Tw)
		case i == mid+1 && data.Ho > 0:
			note = fmt.Sprintf("│  ho = %.2f in", data.Ho)
		case i == heightChars-1:
			note = "┴"
		default:
			note = "│"
		}

		sb.WriteString(fmt.Sprintf("  %s  %s\n", row, note))
	}

	sb.WriteString("\n")
	sb.WriteString("  Legend:\n")
	sb.WriteString("  ███ = Steel (flanges and web)\n")
	sb.WriteString("  Sketch is approximately to scale\n")

	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// pad right-fills s to n runes; %-*s counts bytes and misaligns ², ⁴ and ·
func pad(s string, n int) string {
	if k := len([]rune(s)); k < n {
		return s + strings.Repeat(" ", n-k)
	}
	return s
}

func centered(s string, width int, fill string) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(fill, left) + s + strings.Repeat(fill, width-n-left)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
