package validate

import (
	"regexp"
	"strconv"
	"strings"
)

const INPUT_TYPE_EMAIL = "email"
const INPUT_TYPE_NUMBER = "number"
const INPUT_TYPE_CHOICE = "choice"

const EMAIL_ERROR_MESSAGE = "Please enter a valid email address."
const NUMBER_ERROR_MESSAGE = "Please enter a valid number."

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
var numberPrefixRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

type Result struct {
	Valid bool
	Error string
}

func valid() Result {
	return Result{Valid: true}
}

func invalid(message string) Result {
	return Result{Valid: false, Error: message}
}

// ParseNumber reads the leading decimal number from a string the way a
// permissive chat form does: "5abc" parses as 5 and "20 years" as 20. The
// second return is false when the input does not begin with a number.
func ParseNumber(input string) (float64, bool) {
	match := numberPrefixRegex.FindString(strings.TrimSpace(input))
	if match == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Input checks a user answer against the question's input type. Unrecognized
// types are always valid, no validation is performed for them.
func Input(input string, inputType string, choices []string) Result {
	switch inputType {
	case INPUT_TYPE_EMAIL:
		if !emailRegex.MatchString(input) {
			return invalid(EMAIL_ERROR_MESSAGE)
		}
	case INPUT_TYPE_NUMBER:
		if _, ok := ParseNumber(input); !ok {
			return invalid(NUMBER_ERROR_MESSAGE)
		}
	case INPUT_TYPE_CHOICE:
		for _, choice := range choices {
			if input == choice {
				return valid()
			}
		}
		return invalid("Please choose one of: " + strings.Join(choices, ", "))
	}
	return valid()
}
