package render3d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMat4MulIdentity(t *testing.T) {
	a := Mat4Identity()
	b := Mat4Translate(V3(1, 2, 3))
	require.Equal(t, b, Mat4Mul(a, b), "identity*a mismatch")
	require.Equal(t, b, Mat4Mul(b, a), "a*identity mismatch")
}

func TestLookAtNotIdentity(t *testing.T) {
	m := Mat4LookAt(V3(0, 0, 3), V3(0, 0, 0), V3(0, 1, 0))
	assert.NotEqual(t, Mat4Identity(), m)
}

func TestRotationTransposeIsInverse(t *testing.T) {
	r := Mat4Mul(Mat4RotateY(0.7), Mat4RotateX(0.3))
	p := V3(1.5, -2, 0.25)
	back := TransformPoint(Mat4Transpose(r), TransformPoint(r, p))
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)
	assert.InDelta(t, p.Z, back.Z, 1e-9)
}

func TestRotateYTurnsZTowardX(t *testing.T) {
	p := TransformPoint(Mat4RotateY(math.Pi/2), V3(0, 0, 1))
	assert.InDelta(t, 1, p.X, 1e-9)
	assert.InDelta(t, 0, p.Z, 1e-9)
}

func TestMat4ChainOrder(t *testing.T) {
	// Scale first, then translate.
	m := Mat4Chain(Mat4Translate(V3(1, 0, 0)), Mat4Scale(V3(2, 2, 2)))
	p := TransformPoint(m, V3(1, 1, 1))
	assert.Equal(t, V3(3, 2, 2), p)
}

func TestColorMulScalarSaturates(t *testing.T) {
	c := RGB(200, 100, 10).MulScalar(1.2)
	assert.Equal(t, RGB(240, 120, 12), c)
	assert.Equal(t, uint8(255), RGB(250, 0, 0).MulScalar(2).R)
}

func TestBlend(t *testing.T) {
	dst := RGB(0, 0, 0)
	assert.Equal(t, RGB(10, 20, 30), Blend(dst, RGB(10, 20, 30)))
	assert.Equal(t, dst, Blend(dst, RGBA(255, 255, 255, 0)))
	half := Blend(dst, RGBA(255, 255, 255, 128))
	assert.InDelta(t, 128, int(half.R), 1)
}
