package importer

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// Library is the on-disk import format
type Library struct {
	Games   []GameRecord   `json:"games" validate:"dive"`
	Players []PlayerRecord `json:"players" validate:"dive"`
	Plays   []PlayRecord   `json:"plays" validate:"dive"`
}

// GameRecord is one game in an import file
type GameRecord struct {
	Name             string   `json:"name" validate:"required,max=200"`
	Description      string   `json:"description,omitempty" validate:"max=2000"`
	MinPlayers       int      `json:"min_players" validate:"min=1"`
	MaxPlayers       int      `json:"max_players" validate:"gtefield=MinPlayers"`
	AveragePlayTime  int      `json:"average_play_time" validate:"min=1"`
	ComplexityRating float64  `json:"complexity_rating" validate:"min=1,max=5"`
	Categories       []string `json:"categories,omitempty" validate:"dive,required,max=50"`
}

// PlayerRecord is one player in an import file
type PlayerRecord struct {
	Username    string             `json:"username" validate:"required,max=50"`
	DisplayName string             `json:"display_name,omitempty" validate:"max=100"`
	Preferences *PreferencesRecord `json:"preferences,omitempty"`
}

// PreferencesRecord is a player's preferences in an import file
type PreferencesRecord struct {
	MinPlayTime          *int     `json:"min_play_time,omitempty" validate:"omitnil,min=1"`
	MaxPlayTime          *int     `json:"max_play_time,omitempty" validate:"omitnil,min=1"`
	PreferredPlayerCount *int     `json:"preferred_player_count,omitempty" validate:"omitnil,min=1"`
	ComplexityMin        *float64 `json:"preferred_complexity_min,omitempty" validate:"omitnil,min=1,max=5"`
	ComplexityMax        *float64 `json:"preferred_complexity_max,omitempty" validate:"omitnil,min=1,max=5"`
	Categories           []string `json:"preferred_categories,omitempty" validate:"dive,required,max=50"`
}

// PlayRecord is one logged play in an import file. Player and game are
// referenced by username and name.
type PlayRecord struct {
	Player   string    `json:"player" validate:"required"`
	Game     string    `json:"game" validate:"required"`
	PlayedAt time.Time `json:"played_at" validate:"required"`
	Rating   *float64  `json:"rating,omitempty" validate:"omitnil,min=1,max=5"`
	Notes    string    `json:"notes,omitempty" validate:"max=1000"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator, configured to report JSON field
// names and to check that preference ranges are ordered
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validate.RegisterStructValidation(validatePreferenceRanges, PreferencesRecord{})
	})
	return validate
}

func validatePreferenceRanges(sl validator.StructLevel) {
	p := sl.Current().Interface().(PreferencesRecord)

	if p.MinPlayTime != nil && p.MaxPlayTime != nil && *p.MinPlayTime > *p.MaxPlayTime {
		sl.ReportError(p.MaxPlayTime, "max_play_time", "MaxPlayTime", "gtefield", "min_play_time")
	}
	if p.ComplexityMin != nil && p.ComplexityMax != nil && *p.ComplexityMin > *p.ComplexityMax {
		sl.ReportError(p.ComplexityMax, "preferred_complexity_max", "ComplexityMax", "gtefield", "preferred_complexity_min")
	}
}

// ErrInvalidLibrary is returned when an import file fails validation
var ErrInvalidLibrary = errors.New("invalid library")

// Decode reads and validates a library
func Decode(r io.Reader) (*Library, error) {
	var lib Library
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&lib); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLibrary, err)
	}

	if err := lib.Validate(); err != nil {
		return nil, err
	}
	return &lib, nil
}

// Validate checks every record in the library
func (l *Library) Validate() error {
	err := Validator().Struct(l)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidLibrary, err)
	}

	messages := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		messages[i] = describe(fe)
	}
	return fmt.Errorf("%w: %s", ErrInvalidLibrary, strings.Join(messages, "; "))
}

// describe turns a field error into a short message such as
// "games[2].max_players must be >= min_players"
func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Library.")

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gtefield":
		return fmt.Sprintf("%s must be >= %s", field, fieldName(fe.Param()))
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// fieldName maps a struct field used as a validation parameter to its JSON name
func fieldName(param string) string {
	switch param {
	case "MinPlayers":
		return "min_players"
	default:
		return param
	}
}
