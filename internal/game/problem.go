package game

import "math/rand"

// Tier is a difficulty level governing operand magnitude ranges.
type Tier int

const (
	TierSingleSingle Tier = iota // [1,9] + [1,9]
	TierDoubleSingle             // [10,99] + [1,9]
	TierDoubleDouble             // [10,99] + [10,99]
)

func (t Tier) String() string {
	switch t {
	case TierSingleSingle:
		return "single+single"
	case TierDoubleSingle:
		return "double+single"
	case TierDoubleDouble:
		return "double+double"
	default:
		return "unknown"
	}
}

// Problem is one addition problem. Answer is always First + Second.
type Problem struct {
	First  int
	Second int
	Answer int
}

func singleDigit(r *rand.Rand) int {
	return r.Intn(9) + 1
}

func doubleDigit(r *rand.Rand) int {
	return r.Intn(90) + 10
}

// GenerateProblem produces an addition problem for the given tier.
func GenerateProblem(r *rand.Rand, tier Tier) Problem {
	var first, second int
	switch tier {
	case TierDoubleSingle:
		first, second = doubleDigit(r), singleDigit(r)
	case TierDoubleDouble:
		first, second = doubleDigit(r), doubleDigit(r)
	default:
		first, second = singleDigit(r), singleDigit(r)
	}
	return Problem{First: first, Second: second, Answer: first + second}
}
