package math

import (
	"math"
	"testing"
)

func TestEulerSingleAxis(t *testing.T) {
	if got, want := (Euler{X: 0.7}).Quat(), QuatFromAxisAngle(Right, 0.7); !sameRotation(got, want) {
		t.Errorf("X-only euler: got %v, want %v", got, want)
	}
	if got, want := (Euler{Y: -1.2}).Quat(), QuatFromAxisAngle(Up, -1.2); !sameRotation(got, want) {
		t.Errorf("Y-only euler: got %v, want %v", got, want)
	}
	if got, want := (Euler{Z: 2.1}).Quat(), QuatFromAxisAngle(Front, 2.1); !sameRotation(got, want) {
		t.Errorf("Z-only euler: got %v, want %v", got, want)
	}
}

func TestEulerOrder(t *testing.T) {
	e := Euler{X: 0.3, Y: -0.4, Z: 1.1}
	qx := QuatFromAxisAngle(Right, e.X)
	qy := QuatFromAxisAngle(Up, e.Y)
	qz := QuatFromAxisAngle(Front, e.Z)

	// X is applied first, Z last
	want := qz.Mul(qy).Mul(qx)
	if got := e.Quat(); !sameRotation(got, want) {
		t.Errorf("Euler.Quat() = %v, want %v", got, want)
	}
}

func TestEulerRoundTrip(t *testing.T) {
	tests := []Euler{
		{},
		{X: 0.1, Y: 0.2, Z: 0.3},
		{X: -1.3, Y: 0.9, Z: -2.5},
		{X: 2.8, Y: -0.1, Z: 0.05},
	}

	for _, e := range tests {
		back := e.Quat().Euler()
		if !sameRotation(back.Quat(), e.Quat()) {
			t.Errorf("round trip of %v changed the rotation: %v", e, back)
		}
		if back.magnitude() > e.magnitude()+1e-9 {
			t.Errorf("round trip of %v chose the larger solution %v", e, back)
		}
	}
}

func TestEulerGimbalLock(t *testing.T) {
	e := Euler{X: 0.4, Y: math.Pi / 2, Z: 0}
	back := e.Quat().Euler()
	if !sameRotation(back.Quat(), e.Quat()) {
		t.Errorf("gimbal lock round trip changed rotation: %v -> %v", e, back)
	}
	if back.Z != 0 {
		t.Errorf("gimbal lock should fold Z into X, got %v", back)
	}
}
