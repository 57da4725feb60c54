package draw

import "math"

// circleSegments is the number of polygon edges used to approximate a circle.
const circleSegments = 32

// RectPoints writes the four corners of a rectangle into dst (len >= 4)
// in clockwise order and returns dst[:4].
func RectPoints(dst []Point, x, y, w, h float64) []Point {
	dst = dst[:4]
	dst[0] = Point{X: x, Y: y}
	dst[1] = Point{X: x + w, Y: y}
	dst[2] = Point{X: x + w, Y: y + h}
	dst[3] = Point{X: x, Y: y + h}
	return dst
}

// CirclePoints writes a polygon approximating a circle into dst and returns it.
// len(dst) determines the number of vertices.
func CirclePoints(dst []Point, cx, cy, r float64) []Point {
	n := len(dst)
	for i := range dst {
		angle := float64(i) * 2 * math.Pi / float64(n)
		dst[i] = Point{
			X: cx + math.Cos(angle)*r,
			Y: cy + math.Sin(angle)*r,
		}
	}
	return dst
}
