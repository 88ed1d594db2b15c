// Package sortsum implements the cross-language sort-sum workload:
// generate a fixed pseudo-random sequence, sort it, and sum it.  Every
// port of the workload must produce the same output line bit-for-bit,
// so the generator constants and iteration order here are load-bearing.
package sortsum

import (
	"fmt"
	"io"
	"slices"
)

// Park-Miller multiplicative LCG parameters.  The modulus is the
// Mersenne prime 2^31-1; with a nonzero seed the recurrence never
// produces zero, so every value lies in [1, Modulus-1].
const (
	Modulus    = 2147483647
	Multiplier = 48271
)

// Fixed workload parameters shared by all language ports.
const (
	N    = 2000000
	Seed = 42
)

// Next advances the generator by one step.  The product can reach
// about 1.04e14, so the state must stay in 64-bit arithmetic.
func Next(state int64) int64 {
	return state * Multiplier % Modulus
}

// Generate returns n values of the recurrence starting from seed.
// The state is advanced before each store: the first element is
// already (seed*Multiplier) mod Modulus, not the seed itself.
func Generate(seed int64, n int) []int64 {
	vals := make([]int64, n)
	state := seed
	for i := range vals {
		state = Next(state)
		vals[i] = state
	}
	return vals
}

// Sort reorders vals in place into non-decreasing order.
func Sort(vals []int64) {
	slices.Sort(vals)
}

// Sum returns the total of vals.  The worst case for the fixed
// workload is about 4.3e15, well within int64.
func Sum(vals []int64) int64 {
	var total int64
	for _, v := range vals {
		total += v
	}
	return total
}

// Run executes the full workload and writes the report line to w.
// The line format is part of the cross-language contract.
func Run(w io.Writer) int64 {
	vals := Generate(Seed, N)
	Sort(vals)
	total := Sum(vals)
	fmt.Fprintf(w, "Sorted %d numbers. Sum = %d\n", N, total)
	return total
}
