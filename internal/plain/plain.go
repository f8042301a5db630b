// Package plain runs a quiz as a line-oriented prompt, for terminals or
// pipes where the full-screen UI is not wanted.
package plain

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/geoquiz/internal/questionbank"
	"github.com/abhisek/geoquiz/internal/quiz"
)

// Runner plays question sets over a reader and writer.
type Runner struct {
	in  *bufio.Scanner
	out io.Writer
}

// New creates a Runner reading answers from in and writing to out.
func New(in io.Reader, out io.Writer) *Runner {
	return &Runner{in: bufio.NewScanner(in), out: out}
}

// Play runs set until the player declines another round, types "q", or
// input ends. It returns the result of the last round played.
func (r *Runner) Play(set *questionbank.Set) (quiz.Result, error) {
	lastIndex := -1
	engine, err := quiz.New(set.Questions, quiz.WithObserver(func(s quiz.State) {
		if s.IsComplete || s.IsAnswered || s.CurrentIndex == lastIndex {
			return
		}
		lastIndex = s.CurrentIndex
		fmt.Fprintf(r.out, "\n-- Question %d of %d --\n", s.CurrentIndex+1, len(s.Answers))
	}))
	if err != nil {
		return quiz.Result{}, fmt.Errorf("start quiz %q: %w", set.Name, err)
	}

	fmt.Fprintf(r.out, "%s: %d statements. Answer t (true) or f (false), q to quit.\n", set.Name, engine.QuestionCount())
	for {
		lastIndex = -1
		engine.Restart()

		if !r.round(engine) {
			return quiz.BuildResult(engine), nil
		}
		result := quiz.BuildResult(engine)
		r.printResult(result)

		fmt.Fprint(r.out, "\nPlay again? [y/N] ")
		line, ok := r.readLine()
		if !ok || !strings.EqualFold(line, "y") {
			return result, nil
		}
	}
}

// round plays engine to completion. It returns false if the player quit.
func (r *Runner) round(engine *quiz.Engine) bool {
	for !engine.IsComplete() {
		if engine.IsAnswered() {
			engine.Advance()
			continue
		}

		q := engine.CurrentQuestion()
		fmt.Fprintf(r.out, "%s\n> ", q.Text)

		line, ok := r.readLine()
		if !ok {
			return false
		}
		answer, valid := parseAnswer(line)
		switch {
		case strings.EqualFold(line, "q"):
			return false
		case !valid:
			fmt.Fprintln(r.out, "Please answer t or f.")
			continue
		}

		engine.SubmitAnswer(answer)
		if answer == q.Answer {
			fmt.Fprintf(r.out, "Correct! Score: %d\n", engine.Score())
		} else {
			fmt.Fprintf(r.out, "Wrong, it is %s. Score: %d\n", boolWord(q.Answer), engine.Score())
		}
	}
	return true
}

func (r *Runner) printResult(res quiz.Result) {
	fmt.Fprintf(r.out, "\nYou scored %d / %d (%.0f%%). %s\n", res.Score, res.Total, res.Percent, res.Message())
	fmt.Fprintf(r.out, "Best streak: %d\n", res.BestStreak)
	for i, row := range res.Review {
		if row.IsRight() {
			continue
		}
		fmt.Fprintf(r.out, "  %d. %s (%s)\n", i+1, row.Text, boolWord(row.Correct))
	}
}

func (r *Runner) readLine() (string, bool) {
	if !r.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(r.in.Text()), true
}

func parseAnswer(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "t", "true", "y", "yes":
		return true, true
	case "f", "false", "n", "no":
		return false, true
	}
	return false, false
}

func boolWord(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
