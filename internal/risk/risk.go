// Package risk scores hazards on a 5x5 likelihood/consequence matrix.
//
// Every place that shows or stores a risk score goes through Compute: the
// live preview on the form, the persistence hook on models.RiskAssessment and
// the static matrix page. Nothing else derives a level from a score.
package risk

import (
	"errors"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// ErrInvalidArgument is the only error kind produced by this package.
var ErrInvalidArgument = errors.New("invalid argument")

const (
	MinScale = 1
	MaxScale = 5

	MinScore = MinScale * MinScale
	MaxScore = MaxScale * MaxScale
)

type Level string

const (
	LevelLow      Level = "low"
	LevelMedium   Level = "medium"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

// Levels lists all levels from lowest to highest.
var Levels = []Level{LevelLow, LevelMedium, LevelHigh, LevelCritical}

// Assessment is the result of scoring one likelihood/consequence pair.
type Assessment struct {
	Likelihood  int   `json:"likelihood"`
	Consequence int   `json:"consequence"`
	Score       int   `json:"score"`
	Level       Level `json:"level"`
}

// Compute scores a hazard. Both inputs must be in [1,5].
func Compute(likelihood, consequence int) (Assessment, error) {
	if err := checkScale("likelihood", likelihood); err != nil {
		return Assessment{}, err
	}
	if err := checkScale("consequence", consequence); err != nil {
		return Assessment{}, err
	}

	score := likelihood * consequence
	level, err := LevelForScore(score)
	if err != nil {
		return Assessment{}, err
	}

	return Assessment{
		Likelihood:  likelihood,
		Consequence: consequence,
		Score:       score,
		Level:       level,
	}, nil
}

// LevelForScore bands a score in [1,25].
func LevelForScore(score int) (Level, error) {
	switch {
	case score < MinScore || score > MaxScore:
		return "", goerr.Wrap(ErrInvalidArgument, "risk score out of range", goerr.V("score", score))
	case score <= 4:
		return LevelLow, nil
	case score <= 9:
		return LevelMedium, nil
	case score <= 15:
		return LevelHigh, nil
	default:
		return LevelCritical, nil
	}
}

// ParseScale parses a form value for likelihood or consequence. Anything that
// is not a whole number in [1,5] is rejected, "2.5" included.
func ParseScale(field, raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, goerr.Wrap(ErrInvalidArgument, "value is required", goerr.V("field", field))
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, goerr.Wrap(ErrInvalidArgument, "value is not an integer",
			goerr.V("field", field), goerr.V("value", raw))
	}
	if err := checkScale(field, v); err != nil {
		return 0, err
	}
	return v, nil
}

func checkScale(field string, v int) error {
	if v < MinScale || v > MaxScale {
		return goerr.Wrap(ErrInvalidArgument, "value out of range",
			goerr.V("field", field), goerr.V("value", v))
	}
	return nil
}

// FieldOf returns the name of the input that caused an ErrInvalidArgument,
// or "" when the error carries none.
func FieldOf(err error) string {
	var ge *goerr.Error
	if !errors.As(err, &ge) {
		return ""
	}
	if f, ok := ge.Values()["field"].(string); ok {
		return f
	}
	return ""
}

func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", goerr.Wrap(ErrInvalidArgument, "unknown risk level", goerr.V("level", s))
	}
	return l, nil
}

func (l Level) Valid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh, LevelCritical:
		return true
	}
	return false
}

// Label is the Norwegian name shown on badges and reports.
func (l Level) Label() string {
	switch l {
	case LevelLow:
		return "Lav"
	case LevelMedium:
		return "Middels"
	case LevelHigh:
		return "Høy"
	case LevelCritical:
		return "Kritisk"
	}
	return "Ukjent"
}

// Color is the badge colour as a CSS hex string.
func (l Level) Color() string {
	r, g, b := l.RGB()
	return "#" + hex2(r) + hex2(g) + hex2(b)
}

func (l Level) RGB() (r, g, b int) {
	switch l {
	case LevelLow:
		return 0x2e, 0x7d, 0x32
	case LevelMedium:
		return 0xf9, 0xa8, 0x25
	case LevelHigh:
		return 0xef, 0x6c, 0x00
	case LevelCritical:
		return 0xc6, 0x28, 0x28
	}
	return 0x75, 0x75, 0x75
}

func hex2(v int) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[(v>>4)&0xf], digits[v&0xf]})
}
