package evaluate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
)

// objectSpan is greedy: it runs from the first '{' to the last '}'.
var objectSpan = regexp.MustCompile(`(?s)\{.*\}`)

// ExtractJSONObject locates the brace-delimited span in free text and
// parses it as a JSON object. Numbers are kept as json.Number. Text with no
// span, or a span that is not exactly one JSON object, fails with
// ErrMalformedResponse.
func ExtractJSONObject(text string) (map[string]any, error) {
	span := objectSpan.FindString(text)
	if span == "" {
		return nil, fmt.Errorf("%w: no JSON object in reply", ErrMalformedResponse)
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(span)))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	// Anything after the first value means the span covered several objects.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after JSON object", ErrMalformedResponse)
	}
	return obj, nil
}
