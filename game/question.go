package game

import "strings"

// QuestionType is the kind of question a seeker asked; it decides how many
// cards the hider draws and how many they keep.
type QuestionType string

const (
	QuestionMatching    QuestionType = "Matching"
	QuestionMeasuring   QuestionType = "Measuring"
	QuestionThermometer QuestionType = "Thermometer"
	QuestionRadar       QuestionType = "Radar"
	QuestionTentacles   QuestionType = "Tentacles"
	QuestionPhotos      QuestionType = "Photos"
)

type drawRule struct {
	draw int
	pick int
}

var drawRules = map[QuestionType]drawRule{
	QuestionMatching:    {3, 1},
	QuestionMeasuring:   {3, 1},
	QuestionThermometer: {2, 1},
	QuestionRadar:       {2, 1},
	QuestionTentacles:   {4, 2},
	QuestionPhotos:      {1, 1},
}

// ParseQuestionType accepts the canonical name in any letter case.
func ParseQuestionType(s string) (QuestionType, error) {
	for qt := range drawRules {
		if strings.EqualFold(string(qt), strings.TrimSpace(s)) {
			return qt, nil
		}
	}
	return "", ErrInvalidQuestionType.WithReason("invalid question type %q", s)
}

// DrawCount returns how many cards to draw and how many the player keeps.
func (q QuestionType) DrawCount() (draw, pick int) {
	r := drawRules[q]
	return r.draw, r.pick
}
