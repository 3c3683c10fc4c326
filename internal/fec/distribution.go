package fec

import (
	"fmt"
	"math"
)

// BuildDistribution returns the cumulative robust soliton distribution over degrees 1..k.
// Entry d-1 holds P(degree <= d).
//
// The ideal soliton part is rho(1) = 1/k and rho(d) = 1/(d(d-1)). The spike part uses
// S = c * ln(k/delta) * sqrt(k) and pivot = floor(k/S): tau(d) = S/(k*d) below the pivot,
// tau(pivot) = S/k * ln(S/delta), and zero above it. Both are only defined on 1..k, so a
// pivot beyond k contributes no spike.
//
// Encoder and decoder must build the same table, so the floating point operations are
// performed in a fixed order.
func BuildDistribution(k int, delta, c float64) ([]float64, error) {
	if k < 1 {
		return nil, fmt.Errorf("distribution needs at least one symbol, got %d", k)
	}
	if delta <= 0 || delta >= 1 {
		return nil, fmt.Errorf("delta must be in (0, 1), got %f", delta)
	}
	if c <= 0 {
		return nil, fmt.Errorf("spike scale must be positive, got %f", c)
	}

	n := float64(k)
	s := math.Log(n/delta) * math.Sqrt(n) * c
	pivot := int(math.Floor(n / s))

	rho := make([]float64, k)
	rho[0] = 1 / n
	for d := 2; d <= k; d++ {
		rho[d-1] = 1 / (float64(d) * float64(d-1))
	}

	tau := make([]float64, k)
	for d := 1; d <= k; d++ {
		switch {
		case d < pivot:
			tau[d-1] = s / n / float64(d)
		case d == pivot:
			tau[d-1] = s / n * math.Log(s/delta)
		}
	}

	normalizer := sum(rho) + sum(tau)
	cdf := make([]float64, k)
	var acc float64
	for d := 0; d < k; d++ {
		acc += (rho[d] + tau[d]) / normalizer
		cdf[d] = acc
	}
	return cdf, nil
}

// SampleDegree maps p in [0, 1] onto a degree by inverse CDF lookup.
// It returns the 1-based position of the first bucket exceeding p, clamped to [1, len(cdf)].
func SampleDegree(cdf []float64, p float64) int {
	for i, v := range cdf {
		if v > p {
			return max(1, min(i+1, len(cdf)))
		}
	}
	return len(cdf)
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
