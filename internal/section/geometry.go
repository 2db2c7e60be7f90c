package section

import "math"

// Point represents a 2D coordinate (in)
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Outline returns the wide-flange outline as 12 counter-clockwise vertices,
// starting at the bottom-left corner of the bottom flange. The web is centered
// on the flange width.
func Outline(d, bf, tf, tw float64) []Point {
	webL := (bf - tw) / 2
	webR := (bf + tw) / 2

	return []Point{
		{X: 0, Y: 0},
		{X: bf, Y: 0},
		{X: bf, Y: tf},
		{X: webR, Y: tf},
		{X: webR, Y: d - tf},
		{X: bf, Y: d - tf},
		{X: bf, Y: d},
		{X: 0, Y: d},
		{X: 0, Y: d - tf},
		{X: webL, Y: d - tf},
		{X: webL, Y: tf},
		{X: 0, Y: tf},
	}
}

// PolygonArea returns the area and centroid of a simple polygon using the
// shoelace formula
func PolygonArea(vertices []Point) (area, cx, cy float64) {
	n := len(vertices)
	if n < 3 {
		return 0, 0, 0
	}

	var signedArea float64
	var sumX, sumY float64

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := vertices[i].X*vertices[j].Y - vertices[j].X*vertices[i].Y
		signedArea += cross
		sumX += (vertices[i].X + vertices[j].X) * cross
		sumY += (vertices[i].Y + vertices[j].Y) * cross
	}

	signedArea /= 2
	area = math.Abs(signedArea)

	if area > 0 {
		cx = sumX / (6 * signedArea)
		cy = sumY / (6 * signedArea)
	}

	return area, cx, cy
}

// Bounds returns the bounding box of the vertices
func Bounds(vertices []Point) (minX, maxX, minY, maxY float64) {
	if len(vertices) == 0 {
		return 0, 0, 0, 0
	}

	minX, maxX = vertices[0].X, vertices[0].X
	minY, maxY = vertices[0].Y, vertices[0].Y

	for _, v := range vertices {
		minX = math.Min(minX, v.X)
		maxX = math.Max(maxX, v.X)
		minY = math.Min(minY, v.Y)
		maxY = math.Max(maxY, v.Y)
	}

	return minX, maxX, minY, maxY
}
