package sentiment

// DefaultFlatEpsilon marks a genuinely flat move so it is not mistaken for "not computed".
const DefaultFlatEpsilon = 0.00001

// PercentChange returns (future - base) / future. A zero result becomes epsilon because a later
// trading day was actually found. A non-positive future close yields 0.
func PercentChange(baseClose, futureClose, epsilon float64) float64 {
	if futureClose <= 0 {
		return 0
	}
	change := (futureClose - baseClose) / futureClose
	if change == 0 {
		return epsilon
	}
	return change
}
