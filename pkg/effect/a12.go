// Package effect implements the Vargha-Delaney A12 effect size measure for
// comparing two groups of coverage values.
package effect

import "fmt"

// A12 computes the Vargha-Delaney A12 effect size between a baseline group
// and a tweak group of equal length. The result is in [0, 1]: 0.5 means both
// tools perform equally, above 0.5 favors the tweak, below favors the
// baseline.
func A12(baseline, tweak []float64) (float64, error) {
	if len(baseline) != len(tweak) {
		return 0, fmt.Errorf("a12: group sizes differ: baseline=%d tweak=%d", len(baseline), len(tweak))
	}
	if len(baseline) == 0 {
		return 0, fmt.Errorf("a12: empty groups")
	}
	var more, same int
	for _, x := range tweak {
		for _, y := range baseline {
			switch {
			case x == y:
				same++
			case x > y:
				more++
			}
		}
	}
	return (float64(more) + 0.5*float64(same)) / float64(len(baseline)*len(tweak)), nil
}

// Categorize maps an effect size onto the small/medium/large boundaries
// suggested by Vargha and Delaney: "+L" above 0.71, "+M" above 0.64, "+S"
// above 0.56, with the mirrored negative bands below 0.44, 0.36 and 0.29.
// Values near 0.5 map to two spaces so table columns stay aligned.
func Categorize(effectSize float64) (string, error) {
	switch {
	case effectSize > 1 || effectSize < 0:
		return "", fmt.Errorf("effect size must be within [0, 1], got %v", effectSize)
	case effectSize > 0.71:
		return "+L", nil
	case effectSize > 0.64:
		return "+M", nil
	case effectSize > 0.56:
		return "+S", nil
	case effectSize < 0.29:
		return "-L", nil
	case effectSize < 0.36:
		return "-M", nil
	case effectSize < 0.44:
		return "-S", nil
	default:
		return "  ", nil
	}
}

// TableField renders an effect size as the compact "CAT(0.00)" form used in
// table cells.
func TableField(effectSize float64) (string, error) {
	cat, err := Categorize(effectSize)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%.2f)", cat, effectSize), nil
}
