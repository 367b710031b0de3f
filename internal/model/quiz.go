package model

import (
	"encoding/json"
	"fmt"
)

// MinQuizOptions is the floor on the number of options a quiz can hold.
const MinQuizOptions = 2

// QuizData is the structured payload stored JSON-encoded in a quiz block's
// value field.
type QuizData struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"` // Zero-based index into Options
}

// DefaultQuiz is the record a malformed quiz payload self-heals into.
func DefaultQuiz() QuizData {
	return QuizData{
		Question:      "Nouvelle question ?",
		Options:       []string{"Choix 1", "Choix 2"},
		CorrectAnswer: 0,
	}
}

// ParseQuiz decodes a quiz block value. A payload that does not decode is
// replaced by the default record rather than reported as an error; the
// unparsable original is discarded on the next encode.
func ParseQuiz(value string) QuizData {
	var q QuizData
	if err := json.Unmarshal([]byte(value), &q); err != nil {
		return DefaultQuiz()
	}
	return q
}

// Encode serializes the quiz back into a block value.
func (q QuizData) Encode() string {
	data, _ := json.Marshal(q)
	return string(data)
}

// SetQuestion returns a copy with the question replaced.
func (q QuizData) SetQuestion(question string) QuizData {
	out := q.clone()
	out.Question = question
	return out
}

// SetOption returns a copy with the option at index replaced. Out-of-range
// indices leave the quiz unchanged.
func (q QuizData) SetOption(index int, text string) QuizData {
	if index < 0 || index >= len(q.Options) {
		return q
	}
	out := q.clone()
	out.Options[index] = text
	return out
}

// AddOption returns a copy with a new default-labeled option appended.
func (q QuizData) AddOption() QuizData {
	out := q.clone()
	out.Options = append(out.Options, fmt.Sprintf("Option %d", len(out.Options)+1))
	return out
}

// RemoveOption returns a copy with the option at index removed. Removal is a
// no-op when it would leave fewer than MinQuizOptions options or when index
// is out of range. CorrectAnswer resets to 0 when its option is removed and
// shifts down when an earlier option is removed.
func (q QuizData) RemoveOption(index int) QuizData {
	if len(q.Options) <= MinQuizOptions {
		return q
	}
	if index < 0 || index >= len(q.Options) {
		return q
	}
	out := q.clone()
	out.Options = append(out.Options[:index], out.Options[index+1:]...)
	switch {
	case index == q.CorrectAnswer:
		out.CorrectAnswer = 0
	case index < q.CorrectAnswer:
		out.CorrectAnswer = q.CorrectAnswer - 1
	}
	return out
}

// SetCorrectAnswer returns a copy pointing at the given option. Out-of-range
// indices leave the quiz unchanged; callers are expected to offer only valid
// indices.
func (q QuizData) SetCorrectAnswer(index int) QuizData {
	if index < 0 || index >= len(q.Options) {
		return q
	}
	out := q.clone()
	out.CorrectAnswer = index
	return out
}

func (q QuizData) clone() QuizData {
	out := q
	out.Options = make([]string, len(q.Options))
	copy(out.Options, q.Options)
	return out
}

// QuizVerdict annotates one option after a submission.
type QuizVerdict string

const (
	VerdictCorrect   QuizVerdict = "correct"
	VerdictIncorrect QuizVerdict = "incorrect"
	VerdictNeutral   QuizVerdict = "neutral"
)

// Grade evaluates a submitted selection. Verdicts are per-render play state,
// never stored in the document.
func (q QuizData) Grade(selected int) []QuizVerdict {
	verdicts := make([]QuizVerdict, len(q.Options))
	for i := range q.Options {
		switch i {
		case q.CorrectAnswer:
			verdicts[i] = VerdictCorrect
		case selected:
			verdicts[i] = VerdictIncorrect
		default:
			verdicts[i] = VerdictNeutral
		}
	}
	return verdicts
}
