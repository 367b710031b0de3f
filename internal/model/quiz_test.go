package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseQuizMalformed(t *testing.T) {
	q := ParseQuiz("not json")
	require.Equal(t, DefaultQuiz(), q)

	q = ParseQuiz("")
	require.Equal(t, DefaultQuiz(), q)
}

func TestParseQuizRoundTrip(t *testing.T) {
	orig := QuizData{
		Question:      "Capitale de la France ?",
		Options:       []string{"Paris", "Lyon", "Marseille"},
		CorrectAnswer: 0,
	}
	require.Equal(t, orig, ParseQuiz(orig.Encode()))
}

func TestRemoveOptionFloor(t *testing.T) {
	q := QuizData{Question: "Q", Options: []string{"A", "B"}, CorrectAnswer: 1}

	out := q.RemoveOption(0)
	require.Equal(t, q, out, "removal below the two-option floor must be a no-op")
	require.Len(t, out.Options, 2)
}

func TestRemoveOptionIndexShift(t *testing.T) {
	q := QuizData{Question: "Q", Options: []string{"A", "B", "C"}, CorrectAnswer: 2}

	out := q.RemoveOption(0)
	require.Equal(t, []string{"B", "C"}, out.Options)
	require.Equal(t, 1, out.CorrectAnswer, "correct answer keeps pointing at C")
}

func TestRemoveOptionResetsCorrectAnswer(t *testing.T) {
	q := QuizData{Question: "Q", Options: []string{"A", "B", "C"}, CorrectAnswer: 1}

	out := q.RemoveOption(1)
	require.Equal(t, []string{"A", "C"}, out.Options)
	require.Equal(t, 0, out.CorrectAnswer)
}

func TestRemoveOptionAfterCorrectAnswer(t *testing.T) {
	q := QuizData{Question: "Q", Options: []string{"A", "B", "C"}, CorrectAnswer: 0}

	out := q.RemoveOption(2)
	require.Equal(t, []string{"A", "B"}, out.Options)
	require.Equal(t, 0, out.CorrectAnswer)
}

func TestQuizMutationsDoNotAliasOptions(t *testing.T) {
	q := QuizData{Question: "Q", Options: []string{"A", "B"}, CorrectAnswer: 0}

	out := q.SetOption(0, "Z")
	require.Equal(t, "A", q.Options[0])
	require.Equal(t, "Z", out.Options[0])

	out = q.AddOption()
	require.Len(t, q.Options, 2)
	require.Equal(t, []string{"A", "B", "Option 3"}, out.Options)
}

func TestSetCorrectAnswerOutOfRange(t *testing.T) {
	q := QuizData{Question: "Q", Options: []string{"A", "B"}, CorrectAnswer: 0}
	require.Equal(t, q, q.SetCorrectAnswer(5))
	require.Equal(t, q, q.SetCorrectAnswer(-1))
}

func TestGrade(t *testing.T) {
	q := QuizData{Question: "Q", Options: []string{"A", "B", "C"}, CorrectAnswer: 1}

	verdicts := q.Grade(2)
	require.Equal(t, []QuizVerdict{VerdictNeutral, VerdictCorrect, VerdictIncorrect}, verdicts)

	verdicts = q.Grade(1)
	require.Equal(t, []QuizVerdict{VerdictNeutral, VerdictCorrect, VerdictNeutral}, verdicts)
}
