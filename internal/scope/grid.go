package scope

import "tracescope/internal/render"

// GridSpec describes the static reference geometry of the drawable area. It
// is derived from the viewport geometry per pass and not persisted.
type GridSpec struct {
	Width           int
	Height          int
	Margin          int
	HorizontalLines int

	Backdrop  render.Color
	Border    render.Color
	Tick      render.Color
	Line      render.Color
	Highlight render.Color
}

// GridGeometry is the pixel-space output of the grid rasterizer.
type GridGeometry struct {
	// Backdrop is a 4-vertex triangle strip filling the plot area.
	Backdrop []render.Vertex
	// Border is a closed 5-vertex line strip outlining the plot area.
	Border []render.Vertex
	// Ticks are dashed tick points along all four edges.
	Ticks []render.Vertex
	// Lines are the horizontal reference lines, each a 2-vertex segment.
	// With an odd count greater than one the exact middle line carries the
	// highlight color, marking the zero/center line.
	Lines [][2]render.Vertex
}

// tickStride is the fixed spacing of the dashed edge ticks.
const tickStride = 2

// Rasterize produces the border, tick and reference-line geometry.
func (g GridSpec) Rasterize() GridGeometry {
	left := float32(g.Margin)
	top := float32(g.Margin)
	right := float32(g.Width - g.Margin - 1)
	bottom := float32(g.Height - g.Margin - 1)

	var geo GridGeometry
	geo.Backdrop = []render.Vertex{
		render.V(left, top, g.Backdrop),
		render.V(right, top, g.Backdrop),
		render.V(left, bottom, g.Backdrop),
		render.V(right, bottom, g.Backdrop),
	}
	geo.Border = []render.Vertex{
		render.V(left, top, g.Border),
		render.V(right, top, g.Border),
		render.V(right, bottom, g.Border),
		render.V(left, bottom, g.Border),
		render.V(left, top, g.Border),
	}

	for x := int(left); x <= int(right); x += tickStride {
		geo.Ticks = append(geo.Ticks,
			render.V(float32(x), top, g.Tick),
			render.V(float32(x), bottom, g.Tick),
		)
	}
	for y := int(top); y <= int(bottom); y += tickStride {
		geo.Ticks = append(geo.Ticks,
			render.V(left, float32(y), g.Tick),
			render.V(right, float32(y), g.Tick),
		)
	}

	geo.Lines = g.horizontalLines(left, right)
	return geo
}

// horizontalLines spaces the configured number of reference lines evenly
// between the top and bottom margins.
func (g GridSpec) horizontalLines(left, right float32) [][2]render.Vertex {
	count := g.HorizontalLines
	if count <= 0 {
		return nil
	}
	innerTop := float64(g.Margin + 2)
	innerBottom := float64(g.Height - g.Margin - 2)
	if innerBottom <= innerTop {
		return nil
	}
	step := (innerBottom - innerTop) / float64(count+1)
	middle := -1
	if count > 1 && count%2 == 1 {
		middle = count / 2
	}

	lines := make([][2]render.Vertex, 0, count)
	for i := 0; i < count; i++ {
		color := g.Line
		if i == middle {
			color = g.Highlight
		}
		y := float32(innerTop + float64(i+1)*step)
		lines = append(lines, [2]render.Vertex{
			render.V(left+1, y, color),
			render.V(right-1, y, color),
		})
	}
	return lines
}
