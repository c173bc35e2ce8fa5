package door

import "math"

// Weights returns count unnormalized, strictly positive panel weights for t.
//
//   - equal: 1, 1, 1, ...
//   - golden: φ^0, φ^1, φ^2, ...
//   - reverse: golden, largest first
//   - classic: symmetric 1, 2, ..., 2, 1; except count 2 gives [1, 2]
//   - fibonacci: 1, 1, 2, 3, 5, ...
//
// Unknown types behave as equal. A count below one yields [1].
func Weights(count int, t ProportionType) []float64 {
	if count < 1 {
		return []float64{1}
	}

	w := make([]float64, count)
	switch t {
	case ProportionGolden:
		for i := range w {
			w[i] = math.Pow(Phi, float64(i))
		}
	case ProportionReverse:
		for i := range w {
			w[i] = math.Pow(Phi, float64(count-1-i))
		}
	case ProportionClassic:
		if count == 2 {
			w[0], w[1] = 1, 2
			break
		}
		for i := range w {
			w[i] = float64(min(i, count-1-i) + 1)
		}
	case ProportionFibonacci:
		a, b := 1.0, 1.0
		for i := range w {
			w[i] = a
			a, b = b, a+b
		}
	default:
		for i := range w {
			w[i] = 1
		}
	}
	return w
}

// Normalize divides each weight by the sum of all weights so the result sums
// to one. An empty or non-positive sum yields equal shares.
func Normalize(w []float64) []float64 {
	out := make([]float64, len(w))
	var sum float64
	for _, v := range w {
		sum += v
	}
	if !(sum > 0) {
		for i := range out {
			out[i] = 1 / float64(len(out))
		}
		return out
	}
	for i, v := range w {
		out[i] = v / sum
	}
	return out
}
