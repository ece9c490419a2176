package record

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var errMissingValue = errors.New("missing value")

// ParseValueList converts a list of keywords into their initial letters.
// With commas the input is a word list ("almanac,book"), and a single word
// needs a trailing comma ("book,"). Without commas every character must be
// the initial letter of a word ("abc").
func ParseValueList(input string, words []string) (string, error) {
	if input == "" {
		return "", errMissingValue
	}
	valid := make([]byte, 0, len(words))
	for _, w := range words {
		valid = append(valid, w[0])
	}
	if !strings.Contains(input, ",") {
		for i := 0; i < len(input); i++ {
			if !slices.Contains(valid, input[i]) {
				return "", lettersError(input, string(valid), slices.Contains(words, input))
			}
		}
		return input, nil
	}
	var letters strings.Builder
	for _, w := range splitWords(input) {
		if !slices.Contains(words, w) {
			return "", fmt.Errorf("'%s' not in [%s]", w, strings.Join(words, ", "))
		}
		letters.WriteByte(w[0])
	}
	return letters.String(), nil
}

// splitWords splits on commas, dropping one trailing empty element.
func splitWords(input string) []string {
	words := strings.Split(input, ",")
	if words[len(words)-1] == "" {
		words = words[:len(words)-1]
	}
	return words
}

func lettersError(input, valid string, isKeyword bool) error {
	msg := fmt.Sprintf("'%s' contains letters not in '%s'", input, valid)
	if isKeyword {
		msg += fmt.Sprintf("; if you meant the keyword '%s', follow it with a comma", input)
	}
	return errors.New(msg)
}
