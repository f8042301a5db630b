package quiz

// Grade is a qualitative band for a final score.
type Grade string

const (
	GradePerfect        Grade = "perfect"
	GradeGreat          Grade = "great"
	GradeGood           Grade = "good"
	GradeKeepPracticing Grade = "keep-practicing"
)

// Message returns the text shown for the grade on the results view.
func (g Grade) Message() string {
	switch g {
	case GradePerfect:
		return "Perfect score! You know your world."
	case GradeGreat:
		return "Great job! Almost all correct."
	case GradeGood:
		return "Not bad! A little more practice and you'll ace it."
	default:
		return "Keep practicing, you'll get there!"
	}
}

// GradeFor maps a percentage (0-100) to a Grade.
func GradeFor(percent float64) Grade {
	switch {
	case percent >= 100:
		return GradePerfect
	case percent >= 80:
		return GradeGreat
	case percent >= 50:
		return GradeGood
	default:
		return GradeKeepPracticing
	}
}

// QuestionReview is one row of the per-question breakdown.
type QuestionReview struct {
	Text    string
	Correct bool  // the correct answer
	Given   *bool // nil if never answered
}

// IsRight reports whether the given answer matches the correct one.
func (r QuestionReview) IsRight() bool {
	return r.Given != nil && *r.Given == r.Correct
}

// Result holds the data displayed on the results view.
type Result struct {
	Score    int
	Total    int
	Answered int
	Percent  float64
	Grade    Grade
	Review   []QuestionReview

	// BestStreak is the longest run of consecutive right answers.
	BestStreak int
}

// Message returns the qualitative message for the result's grade.
func (r Result) Message() string {
	return r.Grade.Message()
}

// BuildResult creates a Result from the engine's current state. It can be
// called mid-session for partial progress.
func BuildResult(e *Engine) Result {
	answers := e.Answers()
	questions := e.Questions()
	review := make([]QuestionReview, len(questions))
	for i, q := range questions {
		review[i] = QuestionReview{
			Text:    q.Text,
			Correct: q.Answer,
			Given:   answers[i],
		}
	}

	streak, best := 0, 0
	for _, r := range review {
		if !r.IsRight() {
			streak = 0
			continue
		}
		streak++
		best = max(best, streak)
	}

	score := e.Score()
	total := e.QuestionCount()
	percent := float64(score) / float64(total) * 100

	return Result{
		Score:    score,
		Total:    total,
		Answered: e.AnsweredCount(),
		Percent:  percent,
		Grade:    GradeFor(percent),
		Review:   review,

		BestStreak: best,
	}
}
