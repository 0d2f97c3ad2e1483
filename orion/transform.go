package orion

import "github.com/oliverbestmann/polyspin/glm"

// ScaleUpFactor is applied to x and y while InputState.ScaleUp is set.
const ScaleUpFactor = 1.5

// ComposeModel builds the model matrix of the polygon. Starting from identity
// it translates by the offset, then rotates by elapsedSeconds radians around
// the z axis, then scales if requested.
//
// As the translation is applied last to the vertices, the polygon spins
// around its own center while being moved by the offset.
func ComposeModel(offsetX, offsetY, elapsedSeconds float32, scaleUp bool) glm.Mat4f {
	model := glm.IdentityMat4[float32]().
		Translate(offsetX, offsetY, 0).
		RotateZ(glm.Rad(elapsedSeconds))

	if scaleUp {
		model = model.Scale(ScaleUpFactor, ScaleUpFactor, 1)
	}

	return model
}
