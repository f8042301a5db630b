package quiz

import "errors"

// ErrNoQuestions is returned by New when the question set is empty.
var ErrNoQuestions = errors.New("quiz: question set must contain at least one question")

// Question is a single true/false statement with its correct answer.
type Question struct {
	Text   string
	Answer bool
}

// State is a point-in-time copy of the session state.
type State struct {
	// CurrentIndex is the index of the question being shown. Once the quiz
	// is complete it keeps pointing at the last question seen.
	CurrentIndex int

	// Answers holds one entry per question; nil means not answered yet.
	Answers []*bool

	// IsAnswered is true when the current question has an answer.
	IsAnswered bool

	// IsComplete is true once the session has ended.
	IsComplete bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithObserver registers fn to be called synchronously after every
// operation that changes the session state. No-op calls do not notify.
func WithObserver(fn func(State)) Option {
	return func(e *Engine) {
		e.observer = fn
	}
}

// Engine is the quiz state machine. It owns the session state for a fixed
// question set and is not safe for concurrent use; callers serialize
// access (the TUI does so through its update loop).
type Engine struct {
	questions []Question
	state     sessionState
	observer  func(State)
}

type sessionState struct {
	currentIndex int
	answers      []*bool
	isAnswered   bool
	isComplete   bool
}

// New creates an Engine over questions. The slice is copied, so later
// changes by the caller do not affect the engine.
func New(questions []Question, opts ...Option) (*Engine, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	e := &Engine{
		questions: append([]Question(nil), questions...),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.state = newSessionState(len(e.questions))
	return e, nil
}

func newSessionState(n int) sessionState {
	return sessionState{answers: make([]*bool, n)}
}

// QuestionCount returns the number of questions in the set.
func (e *Engine) QuestionCount() int {
	return len(e.questions)
}

// Questions returns a copy of the question set.
func (e *Engine) Questions() []Question {
	return append([]Question(nil), e.questions...)
}

// CurrentQuestion returns the question at the current index. After
// completion this is the last question that was shown.
func (e *Engine) CurrentQuestion() Question {
	return e.questions[e.state.currentIndex]
}

// CurrentIndex returns the zero-based index of the current question.
func (e *Engine) CurrentIndex() int {
	return e.state.currentIndex
}

// IsAnswered reports whether the current question has been answered.
func (e *Engine) IsAnswered() bool {
	return e.state.isAnswered
}

// IsComplete reports whether the session has ended.
func (e *Engine) IsComplete() bool {
	return e.state.isComplete
}

// IsLast reports whether the current question is the final one.
func (e *Engine) IsLast() bool {
	return e.state.currentIndex == len(e.questions)-1
}

// Answers returns a copy of the recorded answers.
func (e *Engine) Answers() []*bool {
	return copyAnswers(e.state.answers)
}

// Snapshot returns a copy of the full session state.
func (e *Engine) Snapshot() State {
	return State{
		CurrentIndex: e.state.currentIndex,
		Answers:      copyAnswers(e.state.answers),
		IsAnswered:   e.state.isAnswered,
		IsComplete:   e.state.isComplete,
	}
}

// SubmitAnswer records value for the current question and marks it
// answered. Answering the last question completes the quiz. Submitting
// again before advancing overwrites the previous answer. Returns false
// without changing anything if the quiz is already complete.
func (e *Engine) SubmitAnswer(value bool) bool {
	if e.state.isComplete {
		return false
	}
	v := value
	e.state.answers[e.state.currentIndex] = &v
	e.state.isAnswered = true
	if e.IsLast() {
		e.state.isComplete = true
	}
	e.notify()
	return true
}

// Advance moves to the next question, or completes the quiz when called on
// the last one. It only applies when the current question is answered and
// the quiz is not complete; otherwise it returns false and does nothing.
func (e *Engine) Advance() bool {
	if !e.state.isAnswered || e.state.isComplete {
		return false
	}
	if e.state.currentIndex+1 < len(e.questions) {
		e.state.currentIndex++
		e.state.isAnswered = false
	} else {
		e.state.isComplete = true
	}
	e.notify()
	return true
}

// Restart discards the session and starts over from the first question.
func (e *Engine) Restart() {
	e.state = newSessionState(len(e.questions))
	e.notify()
}

// Score returns the number of answered questions whose answer matches the
// correct one. Unanswered questions never count.
func (e *Engine) Score() int {
	score := 0
	for i, a := range e.state.answers {
		if a != nil && *a == e.questions[i].Answer {
			score++
		}
	}
	return score
}

// AnsweredCount returns how many questions have an answer recorded.
func (e *Engine) AnsweredCount() int {
	n := 0
	for _, a := range e.state.answers {
		if a != nil {
			n++
		}
	}
	return n
}

func (e *Engine) notify() {
	if e.observer != nil {
		e.observer(e.Snapshot())
	}
}

func copyAnswers(src []*bool) []*bool {
	out := make([]*bool, len(src))
	for i, a := range src {
		if a != nil {
			v := *a
			out[i] = &v
		}
	}
	return out
}
