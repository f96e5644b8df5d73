package engine

import (
	"fmt"

	"github.com/lixenwraith/slingshot/parameter"
	"github.com/lixenwraith/slingshot/physics"
)

// PyramidSize is the box count of a pyramid with rows rows
func PyramidSize(rows int) int {
	if rows <= 0 {
		return 0
	}
	return rows * (rows + 1) / 2
}

// PyramidSpecs lays out rows triangular rows; row r holds r+1 boxes centered on anchor.X
// Box (r, col) sits at anchor + boxSize*(col - r/2, r - rows/2)
func PyramidSpecs(rows int, boxSize float64, anchor physics.Point) []physics.BodySpec {
	if rows <= 0 {
		return nil
	}
	boxSize = max(boxSize, parameter.MinBoxSize)

	specs := make([]physics.BodySpec, 0, PyramidSize(rows))
	half := float64(rows) / 2
	for r := 0; r < rows; r++ {
		for col := 0; col <= r; col++ {
			specs = append(specs, physics.BodySpec{
				Label: physics.LabelBox,
				Shape: physics.Rect(boxSize, boxSize),
				Position: physics.Point{
					X: anchor.X + boxSize*(float64(col)-float64(r)/2),
					Y: anchor.Y + boxSize*(float64(r)-half),
				},
				Friction: parameter.DefaultFriction,
			})
		}
	}
	return specs
}

// BuildPyramid inserts a fresh pyramid into w as one batch
// rows <= 0 yields an empty set; existing boxes are not touched
func BuildPyramid(w World, rows int, boxSize float64, anchor physics.Point) ([]physics.BodyRef, error) {
	specs := PyramidSpecs(rows, boxSize, anchor)
	if len(specs) == 0 {
		return nil, nil
	}
	refs, err := w.AddBodies(specs)
	if err != nil {
		return nil, fmt.Errorf("build pyramid (%d rows): %w", rows, err)
	}
	return refs, nil
}
