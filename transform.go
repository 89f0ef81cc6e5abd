package sprout

import "math"

// Mat4 is a 4x4 transform in row-major order. Node transforms are rigid:
// a rotation with an optional translation.
//
//	| m[0]  m[1]  m[2]  m[3]  |
//	| m[4]  m[5]  m[6]  m[7]  |
//	| m[8]  m[9]  m[10] m[11] |
//	| m[12] m[13] m[14] m[15] |
type Mat4 [16]float64

// Identity is the identity transform.
var Identity = Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// RotationX returns a rotation of angle radians about the X axis.
func RotationX(angle float64) Mat4 {
	sin, cos := math.Sincos(angle)
	return Mat4{
		1, 0, 0, 0,
		0, cos, -sin, 0,
		0, sin, cos, 0,
		0, 0, 0, 1,
	}
}

// RotationY returns a rotation of angle radians about the Y axis.
func RotationY(angle float64) Mat4 {
	sin, cos := math.Sincos(angle)
	return Mat4{
		cos, 0, sin, 0,
		0, 1, 0, 0,
		-sin, 0, cos, 0,
		0, 0, 0, 1,
	}
}

// RotationZ returns a rotation of angle radians about the Z axis.
// Positive angles turn +Y toward -X.
func RotationZ(angle float64) Mat4 {
	sin, cos := math.Sincos(angle)
	return Mat4{
		cos, -sin, 0, 0,
		sin, cos, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation returns a transform that offsets points by v.
func Translation(v Vec3) Mat4 {
	return Mat4{
		1, 0, 0, v.X,
		0, 1, 0, v.Y,
		0, 0, 1, v.Z,
		0, 0, 0, 1,
	}
}

// Mul returns m * o. Applied to a vector, o acts first.
func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			r[row*4+col] = m[row*4+0]*o[0*4+col] +
				m[row*4+1]*o[1*4+col] +
				m[row*4+2]*o[2*4+col] +
				m[row*4+3]*o[3*4+col]
		}
	}
	return r
}

// TransformVector applies m to a direction (w = 0). Translation is ignored.
func (m Mat4) TransformVector(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		m[4]*v.X + m[5]*v.Y + m[6]*v.Z,
		m[8]*v.X + m[9]*v.Y + m[10]*v.Z,
	}
}

// TransformPoint applies m to a point (w = 1).
func (m Mat4) TransformPoint(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3],
		m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7],
		m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11],
	}
}
