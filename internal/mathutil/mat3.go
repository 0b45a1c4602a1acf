package mathutil

// Mat3 is a row-major 3×3 matrix. Transforms act on column vectors, so
// a.Mul(b) applies b first.
type Mat3 [9]float64

// Mat3Identity returns the identity matrix.
func Mat3Identity() Mat3 {
	return Mat3Rows(Vec3{1, 0, 0}, Vec3{0, 1, 0}, Vec3{0, 0, 1})
}

// Mat3Scale returns a matrix scaling each axis by the matching component of s.
func Mat3Scale(s Vec3) Mat3 {
	return Mat3Rows(Vec3{s[0], 0, 0}, Vec3{0, s[1], 0}, Vec3{0, 0, s[2]})
}

// Mat3Rows assembles a matrix from its three rows.
func Mat3Rows(r0, r1, r2 Vec3) Mat3 {
	return Mat3{r0[0], r0[1], r0[2], r1[0], r1[1], r1[2], r2[0], r2[1], r2[2]}
}

// Row returns row i.
func (m Mat3) Row(i int) Vec3 {
	return Vec3{m[i*3], m[i*3+1], m[i*3+2]}
}

// Col returns column j.
func (m Mat3) Col(j int) Vec3 {
	return Vec3{m[j], m[3+j], m[6+j]}
}

// Mul returns m × b.
func (m Mat3) Mul(b Mat3) Mat3 {
	var out Mat3
	for r := 0; r < 3; r++ {
		row := m.Row(r)
		for c := 0; c < 3; c++ {
			out[r*3+c] = row.Dot(b.Col(c))
		}
	}
	return out
}

// MulVec3 returns m × v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{m.Row(0).Dot(v), m.Row(1).Dot(v), m.Row(2).Dot(v)}
}

// Det is the scalar triple product of the rows.
func (m Mat3) Det() float64 {
	return m.Row(0).Dot(m.Row(1).Cross(m.Row(2)))
}

// cofactorRows returns the cofactor matrix divided by the determinant, which
// is the inverse transpose. ok is false for a singular matrix.
func (m Mat3) cofactorRows() (Mat3, bool) {
	r0, r1, r2 := m.Row(0), m.Row(1), m.Row(2)
	c0 := r1.Cross(r2)
	d := r0.Dot(c0)
	if d == 0 || d != d {
		return Mat3{}, false
	}
	inv := 1 / d
	return Mat3Rows(c0.Scale(inv), r2.Cross(r0).Scale(inv), r0.Cross(r1).Scale(inv)), true
}

// Inverse returns m⁻¹, or the identity when m is singular.
func (m Mat3) Inverse() Mat3 {
	c, ok := m.cofactorRows()
	if !ok {
		return Mat3Identity()
	}
	return c.Transpose()
}

// InverseTranspose returns (m⁻¹)ᵀ, or the identity when m is singular.
func (m Mat3) InverseTranspose() Mat3 {
	c, ok := m.cofactorRows()
	if !ok {
		return Mat3Identity()
	}
	return c
}

func (m Mat3) Transpose() Mat3 {
	return Mat3Rows(m.Col(0), m.Col(1), m.Col(2))
}
