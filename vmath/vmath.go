// Package vmath provides float32 spatial math for sensor-space and
// world-space geometry: vectors, quaternions, poses and bounding boxes.
// Conventions follow the depth SDK: right-handed, Y up, meters.
package vmath

import "math"

const Epsilon float32 = 1e-6

func Sqrt(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

func Abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func Min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func Max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// ApproxEqual compares within tolerance eps
func ApproxEqual(a, b, eps float32) bool {
	return Abs(a-b) <= eps
}

func Lerp(from, to, t float32) float32 {
	return to*t + from*(1.0-t)
}
