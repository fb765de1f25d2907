package game

import "fmt"

// Mode is a named game mode. The three color modes bind a fixed difficulty
// tier for the whole session; ramp escalates the tier with the running score.
type Mode string

const (
	ModePurple Mode = "purple"
	ModeBlue   Mode = "blue"
	ModeOrange Mode = "orange"
	ModeRamp   Mode = "ramp"
)

// Score thresholds at which ramp mode escalates the tier.
const (
	rampDoubleSingleAt = 40
	rampDoubleDoubleAt = 100
)

// KnownModes returns every recognized mode identifier.
func KnownModes() []Mode {
	return []Mode{ModePurple, ModeBlue, ModeOrange, ModeRamp}
}

// ParseMode validates a mode identifier.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModePurple, ModeBlue, ModeOrange, ModeRamp:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown game mode %q", s)
}

func (m Mode) String() string {
	return string(m)
}

// Valid reports whether m is a recognized mode.
func (m Mode) Valid() bool {
	_, err := ParseMode(string(m))
	return err == nil
}

// Tier returns the difficulty tier for the next problem given the current
// score. Fixed modes ignore the score; ramp recomputes before each problem.
func (m Mode) Tier(score int) Tier {
	switch m {
	case ModePurple:
		return TierSingleSingle
	case ModeBlue:
		return TierDoubleSingle
	case ModeOrange:
		return TierDoubleDouble
	case ModeRamp:
		switch {
		case score < rampDoubleSingleAt:
			return TierSingleSingle
		case score < rampDoubleDoubleAt:
			return TierDoubleSingle
		default:
			return TierDoubleDouble
		}
	default:
		return TierSingleSingle
	}
}
