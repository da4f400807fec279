// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"net/url"
)

// validateHTTPURL validates that a URL uses http or https and names a host.
// Paths and query strings are allowed since artifact and API base URLs
// commonly carry them.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	return nil
}

// validateOptionalHTTPURL is validateHTTPURL for settings that may be empty.
func validateOptionalHTTPURL(rawURL, fieldName string) error {
	if rawURL == "" {
		return nil
	}
	return validateHTTPURL(rawURL, fieldName)
}
