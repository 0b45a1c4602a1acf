package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertVec(t *testing.T, want, got Vec3) {
	t.Helper()
	for k := 0; k < 3; k++ {
		assert.InDelta(t, want[k], got[k], 1e-12, "component %d of %v", k, got)
	}
}

func TestVec3(t *testing.T) {
	a, b := Vec3{1, 2, 3}, Vec3{4, 5, 6}
	assert.Equal(t, Vec3{5, 7, 9}, a.Add(b))
	assert.Equal(t, Vec3{3, 3, 3}, b.Sub(a))
	assert.Equal(t, Vec3{2, 4, 6}, a.Scale(2))
	assert.Equal(t, 32.0, a.Dot(b))
	assert.Equal(t, Vec3{0, 0, 1}, Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0}))
	assert.Equal(t, 5.0, Vec3{3, 4, 0}.Len())
	assert.Equal(t, 25.0, Vec3{3, 4, 0}.LenSq())
	assertVec(t, Vec3{0.6, 0.8, 0}, Vec3{3, 4, 0}.Normalize())
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
	assert.Equal(t, Vec3{1, 2, 3}, Vec3{1, 5, 3}.Min(Vec3{4, 2, 6}))
	assert.Equal(t, Vec3{4, 5, 6}, Vec3{1, 5, 3}.Max(Vec3{4, 2, 6}))
}

func TestMat3Inverse(t *testing.T) {
	m := RotZ(0.3).Mul(Mat3Scale(Vec3{2, 3, 4}))
	id := m.Mul(m.Inverse())
	want := Mat3Identity()
	for i := range id {
		assert.InDelta(t, want[i], id[i], 1e-12)
	}
	assert.InDelta(t, 24.0, m.Det(), 1e-12)
	assert.Equal(t, Mat3Identity(), Mat3Scale(Vec3{1, 0, 1}).Inverse(), "singular falls back to identity")
	assert.Equal(t, Mat3{1, 4, 7, 2, 5, 8, 3, 6, 9}, Mat3{1, 2, 3, 4, 5, 6, 7, 8, 9}.Transpose())
}

func TestMat3RowsAndCols(t *testing.T) {
	m := Mat3Rows(Vec3{1, 2, 3}, Vec3{4, 5, 6}, Vec3{7, 8, 10})
	assert.Equal(t, Vec3{4, 5, 6}, m.Row(1))
	assert.Equal(t, Vec3{3, 6, 10}, m.Col(2))
	assert.Equal(t, Vec3{14, 32, 53}, m.MulVec3(Vec3{1, 2, 3}))
	assert.InDelta(t, -3.0, m.Det(), 1e-12)

	it := m.InverseTranspose()
	want := m.Inverse().Transpose()
	for i := range it {
		assert.InDelta(t, want[i], it[i], 1e-12)
	}
	assert.Equal(t, Mat3Identity(), Mat3{}.InverseTranspose())
}

func TestAxisAngle(t *testing.T) {
	assertVec(t, Vec3{0, 1, 0}, RotZ(math.Pi/2).MulVec3(Vec3{1, 0, 0}))
	assertVec(t, Vec3{0, 0, 1}, RotX(math.Pi/2).MulVec3(Vec3{0, 1, 0}))
	assertVec(t, Vec3{1, 0, 0}, RotY(math.Pi/2).MulVec3(Vec3{0, 0, 1}))

	// A third of a turn about the diagonal cycles the axes.
	r := AxisAngle(Vec3{1, 1, 1}, 2*math.Pi/3)
	assertVec(t, Vec3{0, 1, 0}, r.MulVec3(Vec3{1, 0, 0}))
	assert.Equal(t, Mat3Identity(), AxisAngle(Vec3{}, 1))
}

func TestEulerXYZOrder(t *testing.T) {
	// X first: (0,1,0) turns to (0,0,1), then Z leaves it alone.
	assertVec(t, Vec3{0, 0, 1}, EulerXYZ(Vec3{90, 0, 90}).MulVec3(Vec3{0, 1, 0}))
	// Z applied last: (1,0,0) is unchanged by X, then turns to (0,1,0).
	assertVec(t, Vec3{0, 1, 0}, EulerXYZ(Vec3{90, 0, 90}).MulVec3(Vec3{1, 0, 0}))
	assert.Equal(t, Mat3Identity(), EulerXYZ(Vec3{}))
}

func TestTRS(t *testing.T) {
	m := TRS(Vec3{10, 0, 0}, Vec3{0, 90, 0}, Vec3{2, 2, 2})
	assertVec(t, Vec3{10, 0, -2}, m.MulPoint(Vec3{1, 0, 0}))
	assertVec(t, Vec3{0, 0, -2}, m.MulDir(Vec3{1, 0, 0}))

	r := TRS(Vec3{}, Vec3{0, 90, 0}, Vec3{1, 1, 1}).Linear()
	want := RotY(Deg2Rad(90))
	for i := range r {
		assert.InDelta(t, want[i], r[i], 1e-12)
	}
}

func TestMat4Mul(t *testing.T) {
	a := FromMat3Translation(Mat3Identity(), Vec3{1, 0, 0})
	b := FromMat3Translation(Mat3Scale(Vec3{2, 2, 2}), Vec3{0, 3, 0})
	assertVec(t, Vec3{3, 5, 2}, Mat4Mul(a, b).MulPoint(Vec3{1, 1, 1}))
	assert.Equal(t, a, Mat4Mul(a, Mat4Identity()))
}

func TestNormalMatrixNonUniformScale(t *testing.T) {
	// The plane x + y = 1 stretched 2× along X becomes x/2 + y = 1.
	m := FromMat3Translation(Mat3Scale(Vec3{2, 1, 1}), Vec3{5, 5, 5})
	n := m.NormalMatrix().MulVec3(Vec3{1, 1, 0}.Normalize()).Normalize()
	assertVec(t, Vec3{0.5, 1, 0}.Normalize(), n)

	p := m.MulPoint(Vec3{0.25, 0.75, 0})
	q := m.MulPoint(Vec3{0.75, 0.25, 0})
	assert.InDelta(t, 0, p.Sub(q).Dot(n), 1e-12)
}

func TestOrbitView(t *testing.T) {
	assert.Equal(t, Mat3Identity(), OrbitView(0, 0))
	v := OrbitView(-35, 30).MulVec3(Vec3{1, 2, 3})
	assert.InDelta(t, Vec3{1, 2, 3}.Len(), v.Len(), 1e-12)
	assert.InDelta(t, math.Pi, Deg2Rad(180), 1e-15)
}

func TestBounds(t *testing.T) {
	c := CubeBounds(Vec3{1, 2, 3}, 0.5)
	assert.Equal(t, 0.5, c.Min[0])
	assert.Equal(t, 3.5, c.Max[2])

	_, ok := PointsBounds(nil)
	assert.False(t, ok)
	b, ok := PointsBounds([]Vec3{{1, 5, -1}, {-2, 0, 4}})
	assert.True(t, ok)
	assert.Equal(t, [3]float64{-2, 0, -1}, [3]float64(b.Min))
	assert.Equal(t, [3]float64{1, 5, 4}, [3]float64(b.Max))

	assert.True(t, Overlaps(CubeBounds(Vec3{}, 1), CubeBounds(Vec3{2, 0, 0}, 1)), "touching faces overlap")
	assert.False(t, Overlaps(CubeBounds(Vec3{}, 1), CubeBounds(Vec3{2.5, 0, 0}, 1)))
}

func TestDistAndAngle(t *testing.T) {
	assert.Equal(t, 25.0, DistSq(Vec3{0, 0, 0}, Vec3{3, 4, 0}))
	assert.InDelta(t, 90, AngleDeg(Vec3{1, 0, 0}, Vec3{0, 3, 0}), 1e-9)
	assert.InDelta(t, 180, AngleDeg(Vec3{1, 0, 0}, Vec3{-1, 0, 0}), 1e-6)
	assert.InDelta(t, 0, AngleDeg(Vec3{0, 1, 0}, Vec3{0, 2, 0}), 1e-6)
	assert.Equal(t, 0.0, AngleDeg(Vec3{}, Vec3{0, 1, 0}))
}
