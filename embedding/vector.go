package embedding

import "math"

// Norm returns the L2 norm of the vector.
func Norm(vec []float32) float64 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}

// Normalize scales vec to unit L2 norm in place and returns it.
// The zero vector is left unchanged.
func Normalize(vec []float32) []float32 {
	norm := Norm(vec)
	if norm == 0 {
		return vec
	}
	inv := float32(1 / norm)
	for i := range vec {
		vec[i] *= inv
	}
	return vec
}

// Dot returns the dot product of two equal-length vectors. For unit vectors
// this is the cosine similarity.
func Dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
