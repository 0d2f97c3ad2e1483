package glm

type Vec2[T numeric] [2]T

func (v Vec2[T]) XY() (x, y T) {
	return v[0], v[1]
}

// Vec4 is a homogeneous coordinate. Points have w=1, directions w=0.
type Vec4[T numeric] [4]T

// Point returns the homogeneous coordinate of the 2d point v.
func (v Vec2[T]) Point() Vec4[T] {
	return Vec4[T]{v[0], v[1], 0, 1}
}

func (v Vec4[T]) XY() Vec2[T] {
	return Vec2[T]{v[0], v[1]}
}

func (v Vec4[T]) XYZW() (x, y, z, w T) {
	return v[0], v[1], v[2], v[3]
}
