package service

import (
	"errors"
	"math"
	"strings"

	"madrasa/course-admin/internal/domain"
)

// Validation errors for quiz question payloads. The rules are checked in a
// fixed order and the first violation wins.
var (
	ErrQuestionTextRequired  = errors.New("question text is required")
	ErrQuestionOptionsNeeded = errors.New("at least two options are required")
	ErrQuestionAnswerInvalid = errors.New("correct answer must match one of the options")
	ErrQuestionScoreInvalid  = errors.New("score must be a positive number")
	ErrQuestionIndexInvalid  = errors.New("question index out of range")
)

// IsQuestionValidationError reports whether err is one of the question
// payload validation errors (client fault, not an upstream failure).
func IsQuestionValidationError(err error) bool {
	return errors.Is(err, ErrQuestionTextRequired) ||
		errors.Is(err, ErrQuestionOptionsNeeded) ||
		errors.Is(err, ErrQuestionAnswerInvalid) ||
		errors.Is(err, ErrQuestionScoreInvalid)
}

// ValidateQuestion normalizes and validates a question payload. Rules, in
// order: trimmed question text required; at least two non-blank options
// after trimming; the correct answer must case-sensitively equal one of the
// trimmed options; the score must be a finite number greater than zero.
func ValidateQuestion(questionAr string, optionsAr []string, correctAnswerAr string, score float64) (domain.Question, error) {
	text := strings.TrimSpace(questionAr)
	options := normalizeOptions(optionsAr)
	answer := strings.TrimSpace(correctAnswerAr)

	if text == "" {
		return domain.Question{}, ErrQuestionTextRequired
	}
	if len(options) < 2 {
		return domain.Question{}, ErrQuestionOptionsNeeded
	}
	if answer == "" || !containsString(options, answer) {
		return domain.Question{}, ErrQuestionAnswerInvalid
	}
	if math.IsNaN(score) || math.IsInf(score, 0) || score <= 0 {
		return domain.Question{}, ErrQuestionScoreInvalid
	}

	return domain.Question{
		QuestionAr:      text,
		OptionsAr:       options,
		CorrectAnswerAr: answer,
		Score:           score,
	}, nil
}

// normalizeOptions trims every option and drops the blanks.
func normalizeOptions(options []string) []string {
	normalized := make([]string, 0, len(options))
	for _, option := range options {
		if trimmed := strings.TrimSpace(option); trimmed != "" {
			normalized = append(normalized, trimmed)
		}
	}
	return normalized
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

// appendQuestion returns a mutation that appends the validated question to
// the end of the list.
func appendQuestion(question domain.Question) func([]domain.Question) ([]domain.Question, error) {
	return func(current []domain.Question) ([]domain.Question, error) {
		return append(current, question), nil
	}
}

// replaceQuestionAt returns a mutation that replaces the element at index.
// A stale index past the current length aborts with ErrQuestionIndexInvalid.
func replaceQuestionAt(index int, question domain.Question) func([]domain.Question) ([]domain.Question, error) {
	return func(current []domain.Question) ([]domain.Question, error) {
		if index < 0 || index >= len(current) {
			return nil, ErrQuestionIndexInvalid
		}
		current[index] = question
		return current, nil
	}
}

// removeQuestionAt returns a mutation that removes the element at index.
// Every question after it shifts down by one, so indices cached before this
// call point at different questions afterwards; callers must refetch.
func removeQuestionAt(index int) func([]domain.Question) ([]domain.Question, error) {
	return func(current []domain.Question) ([]domain.Question, error) {
		if index < 0 || index >= len(current) {
			return nil, ErrQuestionIndexInvalid
		}
		return append(current[:index], current[index+1:]...), nil
	}
}
