package game

import (
	"errors"
	"fmt"
)

// Kind classifies a game error for callers that translate it into a response.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
)

// Error is a caller-correctable failure. Two errors match under errors.Is
// when their codes match, so a sentinel still matches after WithReason.
type Error struct {
	Kind   Kind
	Code   string
	Reason string
}

func (e *Error) Error() string { return e.Reason }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// WithReason returns a copy of e carrying a more specific message.
func (e *Error) WithReason(format string, args ...any) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Reason: fmt.Sprintf(format, args...)}
}

var (
	ErrInvalidPosition         = &Error{KindValidation, "invalid_position", "invalid hand position"}
	ErrEmptySlot               = &Error{KindNotFound, "empty_slot", "no card at this position"}
	ErrInvalidDiscardSelection = &Error{KindValidation, "invalid_discard_selection", "invalid discard selection"}
	ErrInvalidDifficulty       = &Error{KindValidation, "invalid_difficulty", "game size must be between 3 and 5"}
	ErrAlreadyHasSpace         = &Error{KindValidation, "already_has_space", "there's already enough space in the hand"}
	ErrWrongDiscardCount       = &Error{KindValidation, "wrong_discard_count", "wrong number of cards to discard"}
	ErrInsufficientSpace       = &Error{KindValidation, "insufficient_space", "not enough space even after discarding"}
	ErrInvalidHand             = &Error{KindValidation, "invalid_hand", "hand must have exactly 5 positions"}
	ErrUnknownCard             = &Error{KindValidation, "unknown_card", "card is not part of the catalog"}
	ErrInvalidQuestionType     = &Error{KindValidation, "invalid_question_type", "invalid question type"}
	ErrConflict                = &Error{KindConflict, "conflict", "game state was modified concurrently, reload and retry"}
)

// KindOf returns the kind of a game error, or 0 for anything else.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return 0
}
