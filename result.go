package restdb

import (
	"net/http"
	"strings"
)

// Result is the structured outcome of one API request. Messages keep their
// insertion order and carry a severity prefix so transports can forward them
// verbatim.
type Result struct {
	Success       bool
	StatusCode    int
	StatusMessage string
	Messages      []string

	// Data holds the model set of a successful select, nil otherwise
	Data *ModelSet
}

// NewResult returns a successful OK result.
func NewResult() *Result {
	return &Result{Success: true, StatusCode: http.StatusOK, StatusMessage: "OK"}
}

// SetError marks the result failed with the given status.
func (r *Result) SetError(statusCode int, message string) *Result {
	r.Success = false
	r.StatusCode = statusCode
	r.StatusMessage = message
	r.AddError(message)
	return r
}

// AddError appends an error message.
func (r *Result) AddError(message string) {
	r.Messages = append(r.Messages, "ERROR: "+message)
}

// AddWarning appends a warning message.
func (r *Result) AddWarning(message string) {
	r.Messages = append(r.Messages, "WARNING: "+message)
}

// AddInfo appends an info message.
func (r *Result) AddInfo(message string) {
	r.Messages = append(r.Messages, "INFO: "+message)
}

// AddDebug appends a debug message.
func (r *Result) AddDebug(message string) {
	r.Messages = append(r.Messages, "DEBUG: "+message)
}

// Warnings returns the warning messages without their prefix.
func (r *Result) Warnings() []string {
	var warnings []string
	for _, message := range r.Messages {
		if rest, ok := strings.CutPrefix(message, "WARNING: "); ok {
			warnings = append(warnings, rest)
		}
	}
	return warnings
}
