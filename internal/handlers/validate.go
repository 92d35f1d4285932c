package handlers

import "strings"

type requiredField struct {
	Label string
	Value string
}

// firstMissing walks the fields in declaration order and returns a 400 for
// the first blank one. Later fields are not inspected, matching the
// short-circuit contract of the validation gate.
func firstMissing(fields ...requiredField) *apiError {
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			return badRequest("Please provide " + f.Label + ".")
		}
	}
	return nil
}
