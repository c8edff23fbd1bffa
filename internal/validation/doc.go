// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide. It caches struct
// metadata, so validating the same request type repeatedly is cheap.
//
// # Custom Tags
//
//   - notblank: string must contain a non-whitespace character
//   - httpurl: absolute http or https URL with a host and no query string
//   - month: integer in the range 1..12
//
// # Usage
//
//	type bucketRequest struct {
//	    Year  int `validate:"gte=1"`
//	    Month int `validate:"month"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    // respond 400 with apiErr.Code / apiErr.Message
//	}
//
// Error messages are translated into short human-readable sentences such as
// "Month must be between 1 and 12" so they can be surfaced to the view layer
// unchanged.
package validation
