package game

// Rules select the scoring variant applied to answer submissions.
type Rules struct {
	CorrectPoints   int
	IncorrectPoints int
	// AdvanceOnIncorrect clears the input and schedules a new problem after
	// a wrong answer. When false the player keeps the same problem and
	// input and retries without penalty.
	AdvanceOnIncorrect bool
	// RevealAnswer includes the correct answer in incorrect feedback.
	RevealAnswer bool
}

// RetryRules keeps the problem on a wrong answer and lets the player retry.
var RetryRules = Rules{
	CorrectPoints: 20,
}

// ConsolationRules award a single point for a wrong answer, reveal the
// correct sum, and advance to a new problem.
var ConsolationRules = Rules{
	CorrectPoints:      20,
	IncorrectPoints:    1,
	AdvanceOnIncorrect: true,
	RevealAnswer:       true,
}
