// Package validation provides struct tag validation for configuration and
// API request payloads.
//
//	type TranslateRequest struct {
//	    Source string `json:"source" validate:"required"`
//	    Target string `json:"target" validate:"required"`
//	}
//	err := validation.Validate(req)
//
// Failures come back as an application error with per-field details.
package validation
