package handlers

import (
	"strings"
)

type ItemValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateItem(req ItemRequest) []ItemValidationError {
	errs := []ItemValidationError{}
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, ItemValidationError{Field: "Name", Description: "Name is required"})
	}
	if req.Count < 0 {
		errs = append(errs, ItemValidationError{Field: "Count", Description: "Count cannot be negative"})
	}
	return errs
}
