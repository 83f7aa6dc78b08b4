package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// LenientBool is a bool that tolerates sloppy annotation JSON. Reviewer UIs
// have sent "true"/"false" strings and 0/1 numbers for is_defective; anything
// unrecognized coerces to false rather than failing the export.
type LenientBool bool

// UnmarshalJSON accepts a JSON bool, a "true"/"false"/"0"/"1" string, or a
// number (non-zero is true). Any other shape coerces to false.
func (b *LenientBool) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	switch s {
	case "true":
		*b = true
		return nil
	case "false", "null":
		*b = false
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		v, err := strconv.ParseBool(strings.TrimSpace(str))
		*b = LenientBool(err == nil && v)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*b = n != 0
		return nil
	}
	*b = false
	return nil
}

// LenientString is a string that coerces non-string annotation values
// (numbers, booleans, objects) to the empty string instead of failing.
type LenientString string

// UnmarshalJSON accepts a JSON string; any other shape coerces to "".
func (s *LenientString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		*s = ""
		return nil
	}
	*s = LenientString(str)
	return nil
}
