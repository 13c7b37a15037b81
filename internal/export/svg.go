// Package export renders stored trajectories to files outside the terminal.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/chaossim/internal/dynamo"
	"github.com/san-kum/chaossim/internal/metrics"
)

// Plane selects the two state axes drawn on the page.
type Plane string

const (
	PlaneXY Plane = "xy"
	PlaneXZ Plane = "xz"
	PlaneYZ Plane = "yz"
)

func ParsePlane(s string) (Plane, error) {
	switch p := Plane(strings.ToLower(s)); p {
	case PlaneXY, PlaneXZ, PlaneYZ:
		return p, nil
	}
	return "", fmt.Errorf("unknown plane %q (want xy, xz or yz)", s)
}

func (p Plane) axes() (int, int) {
	switch p {
	case PlaneXY:
		return 0, 1
	case PlaneYZ:
		return 1, 2
	default:
		return 0, 2
	}
}

type SVGOptions struct {
	Plane      Plane
	Width      int
	Height     int
	Background string
	// Colors are spread over the trajectory from first point to last.
	Colors []string
	Stroke float64
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Plane:      PlaneXZ,
		Width:      800,
		Height:     800,
		Background: "#0a0a0a",
		Colors:     []string{"#00ff00"},
		Stroke:     1.0,
	}
}

// TrajectoryToSVG writes states projected onto opts.Plane as one polyline per
// color band. Non-finite points break the line.
func TrajectoryToSVG(w io.Writer, states []dynamo.State, opts SVGOptions) error {
	if len(states) < 2 {
		return fmt.Errorf("need at least 2 points, got %d", len(states))
	}
	if len(opts.Colors) == 0 {
		opts.Colors = DefaultSVGOptions().Colors
	}

	finite := make([]dynamo.State, 0, len(states))
	for _, s := range states {
		if dynamo.IsFinite(s) {
			finite = append(finite, s)
		}
	}
	if len(finite) < 2 {
		return fmt.Errorf("trajectory has fewer than 2 finite points")
	}

	ax, ay := opts.Plane.axes()
	cols := metrics.Columns(finite)
	minX, maxX := floats.Min(cols[ax]), floats.Max(cols[ax])
	minY, maxY := floats.Min(cols[ay]), floats.Max(cols[ay])

	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.05
	minY -= rangeY * 0.05
	rangeX *= 1.1
	rangeY *= 1.1

	width, height := float64(opts.Width), float64(opts.Height)
	project := func(s dynamo.State) (float64, float64) {
		return (s[ax] - minX) / rangeX * width, height - (s[ay]-minY)/rangeY*height
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, opts.Width, opts.Height, opts.Width, opts.Height, opts.Background)

	bands := len(opts.Colors)
	for b := 0; b < bands; b++ {
		start := b * (len(states) - 1) / bands
		end := (b + 1) * (len(states) - 1) / bands
		if end <= start {
			continue
		}

		fmt.Fprintf(bw, `<path fill="none" stroke="%s" stroke-width="%.1f" d="`, opts.Colors[b], opts.Stroke)
		pen := false
		for i := start; i <= end; i++ {
			if !dynamo.IsFinite(states[i]) {
				pen = false
				continue
			}
			x, y := project(states[i])
			if pen {
				fmt.Fprintf(bw, " L%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(bw, " M%.1f,%.1f", x, y)
				pen = true
			}
		}
		bw.WriteString("\"/>\n")
	}

	bw.WriteString("</svg>\n")
	return bw.Flush()
}
