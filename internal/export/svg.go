package export

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/viz"
)

const DefaultBackground = "#0a0a0a"

func hex(c color.RGBA) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}

func header(sb *strings.Builder, w, h float64, bg string) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, w, h, w, h, bg)
}

// SnapshotToSVG draws a world snapshot in viewport coordinates. Trail points
// are drawn oldest first with fill-opacity equal to their fade alpha.
func SnapshotToSVG(bodies []dynamo.BodyState, vp dynamo.Viewport, bg string) string {
	var sb strings.Builder
	header(&sb, vp.Width, vp.Height, bg)

	for _, b := range bodies {
		fmt.Fprintf(&sb, "<g fill=\"%s\">\n", hex(b.Color))
		for i, p := range b.Trail {
			alpha := dynamo.TrailAlpha(i, b.TrailCap)
			fmt.Fprintf(&sb, `<circle cx="%.2f" cy="%.2f" r="1.5" fill-opacity="%.3f"/>
`, p.X, p.Y, alpha)
		}
		sb.WriteString("</g>\n")
	}
	for _, b := range bodies {
		fmt.Fprintf(&sb, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"><title>%s</title></circle>
`, b.Position.X, b.Position.Y, b.Radius, hex(b.Color), b.Name)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TrajectoryToSVG draws one path per body through every recorded frame,
// scaled to fit width x height with a 10% margin.
func TrajectoryToSVG(frames []sim.Frame, colors []string, width, height int) string {
	if len(frames) < 2 || len(frames[0].Positions) == 0 {
		return ""
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, f := range frames {
		for _, p := range f.Positions {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
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

	var sb strings.Builder
	header(&sb, float64(width), float64(height), DefaultBackground)

	for body := range frames[0].Positions {
		stroke := "#00ff00"
		if body < len(colors) && colors[body] != "" {
			stroke = colors[body]
		}
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke)
		for i, f := range frames {
			p := f.Positions[body]
			x := (p.X - minX) / rangeX * float64(width)
			y := (p.Y - minY) / rangeY * float64(height)
			if i == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// CanvasToSVG converts a Braille canvas to SVG, one dot per lit sub-pixel
// in its cell's colour.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	header(&sb, width, height, DefaultBackground)

	dotRadius := scale * 0.4
	cw, ch := canvas.PixelSize()
	for y := range ch {
		for x := range cw {
			if !canvas.IsSet(x, y) {
				continue
			}
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, float64(x)*scale+scale/2, float64(y)*scale+scale/2, dotRadius, hex(canvas.Colors[y/4][x/2]))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}
