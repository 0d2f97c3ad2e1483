package orion

import (
	"log/slog"

	"github.com/oliverbestmann/earcut-go"
)

// TriangulateOutline splits a simple polygon, given as its outline in
// (x, y) pairs, into triangles. The returned vertices contain the outline
// points, the indices reference them three per triangle. Degenerate
// outlines yield no indices.
func TriangulateOutline(outline []float32) ([]float32, []uint32) {
	points := make([]earcut.Point[float32], 0, len(outline)/2)
	for idx := 0; idx+1 < len(outline); idx += 2 {
		points = append(points, earcut.Point[float32]{X: outline[idx], Y: outline[idx+1]})
	}

	points, indices := earcut.Triangulate(points, nil)

	vertices := make([]float32, 0, 2*len(points))
	for _, point := range points {
		vertices = append(vertices, point.X, point.Y)
	}

	slog.Debug("Polygon triangulated",
		slog.Int("vertices", len(points)),
		slog.Int("triangles", len(indices)/3),
	)

	return vertices, indices
}
