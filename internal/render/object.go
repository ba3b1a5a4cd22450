package render

import (
	"boulder-smash/internal/lighting"
	"boulder-smash/internal/transform"

	"github.com/go-gl/mathgl/mgl32"
)

// Object is one drawable: a mesh placed by a transform and drawn with a
// named shader. Tint multiplies the lit colour; the zero Tint means white.
type Object struct {
	Name      string
	Mesh      *Mesh
	Transform transform.Transform
	Shader    string
	Lit       bool
	Tint      mgl32.Vec3
}

func (o *Object) tint() mgl32.Vec3 {
	if o.Tint == (mgl32.Vec3{}) {
		return mgl32.Vec3{1, 1, 1}
	}
	return o.Tint
}

// Projection is the camera state a frame is drawn with.
type Projection struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
}

// Submission is everything the renderer needs for one frame.
type Submission struct {
	Projection Projection
	ViewPos    mgl32.Vec3
	Objects    []*Object
	Lights     *lighting.Rig
}

// Renderer consumes one Submission per frame.
type Renderer interface {
	Render(s Submission)
}
