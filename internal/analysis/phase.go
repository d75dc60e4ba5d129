package analysis

import (
	"strings"
)

type Point struct{ X, Y float64 }

// ErrorPortrait pairs the tracking error e = sp - pv with its finite
// difference rate. Slices must have equal length; the first sample has no
// rate and is skipped.
func ErrorPortrait(times, pv, sp []float64) []Point {
	n := len(times)
	if n < 2 || len(pv) < n || len(sp) < n {
		return nil
	}
	pts := make([]Point, 0, n-1)
	prev := sp[0] - pv[0]
	for i := 1; i < n; i++ {
		e := sp[i] - pv[i]
		dt := times[i] - times[i-1]
		if dt > 0 {
			pts = append(pts, Point{X: e, Y: (e - prev) / dt})
		}
		prev = e
	}
	return pts
}

// PortraitToASCII draws points on a width x height character grid with axes
// where they cross the visible range.
func PortraitToASCII(pts []Point, width, height int) string {
	if len(pts) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := pts[0].X, pts[0].X
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	col := func(x float64) int { return int((x - minX) / rangeX * float64(width-1)) }
	row := func(y float64) int { return height - 1 - int((y-minY)/rangeY*float64(height-1)) }

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}
	if c := col(0); c >= 0 && c < width {
		for r := range canvas {
			canvas[r][c] = '│'
		}
	}
	if r := row(0); r >= 0 && r < height {
		for c := range canvas[r] {
			canvas[r][c] = '─'
		}
	}
	for _, p := range pts {
		r, c := row(p.Y), col(p.X)
		if r >= 0 && r < height && c >= 0 && c < width {
			canvas[r][c] = '•'
		}
	}

	var sb strings.Builder
	for _, line := range canvas {
		sb.WriteString(string(line))
		sb.WriteRune('\n')
	}
	return sb.String()
}
