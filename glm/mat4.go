package glm

// Mat4 is a 4x4 matrix stored in column-major order, the layout
// expected by glUniformMatrix4fv without transposing.
type Mat4[T numeric] [16]T

func IdentityMat4[T numeric]() Mat4[T] {
	return ScaleMat4[T](1, 1, 1)
}

func TranslationMat4[T numeric](x, y, z T) Mat4[T] {
	m := IdentityMat4[T]()
	m.setColumn(3, Vec4[T]{x, y, z, 1})
	return m
}

// RotationZMat4 rotates counter-clockwise around the z axis.
func RotationZMat4[T numeric](angle Rad) Mat4[T] {
	sin, cos := angle.Sincos()
	s, c := T(sin), T(cos)

	m := IdentityMat4[T]()
	m.setColumn(0, Vec4[T]{c, s, 0, 0})
	m.setColumn(1, Vec4[T]{-s, c, 0, 0})
	return m
}

func ScaleMat4[T numeric](x, y, z T) Mat4[T] {
	var m Mat4[T]
	m[0], m[5], m[10], m[15] = x, y, z, 1
	return m
}

// The following methods post-multiply: m.Translate(...) applies the
// translation before anything already contained in m, the same way
// glm::translate does.

func (m Mat4[T]) Translate(x, y, z T) Mat4[T] {
	return m.Mul(TranslationMat4[T](x, y, z))
}

func (m Mat4[T]) RotateZ(angle Rad) Mat4[T] {
	return m.Mul(RotationZMat4[T](angle))
}

func (m Mat4[T]) Scale(x, y, z T) Mat4[T] {
	return m.Mul(ScaleMat4[T](x, y, z))
}

// Mul returns m * other.
func (m Mat4[T]) Mul(other Mat4[T]) Mat4[T] {
	var res Mat4[T]
	for col := range 4 {
		res.setColumn(col, m.Transform(other.Column(col)))
	}

	return res
}

// Transform returns m * v.
func (m Mat4[T]) Transform(v Vec4[T]) Vec4[T] {
	var res Vec4[T]
	for row := range 4 {
		res[row] = m[row]*v[0] + m[4+row]*v[1] + m[8+row]*v[2] + m[12+row]*v[3]
	}

	return res
}

// TransformPoint applies the matrix to the 2d point (x, y, 0, 1).
func (m Mat4[T]) TransformPoint(p Vec2[T]) Vec2[T] {
	return m.Transform(p.Point()).XY()
}

// Column returns the i-th column of the matrix.
func (m Mat4[T]) Column(i int) Vec4[T] {
	return Vec4[T]{m[i*4], m[i*4+1], m[i*4+2], m[i*4+3]}
}

func (m *Mat4[T]) setColumn(i int, v Vec4[T]) {
	for row := range 4 {
		m[i*4+row] = v[row]
	}
}
