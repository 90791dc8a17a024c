package cli

import (
	"fmt"
	"strings"
)

// ValidateOutputFormat checks format against the formats a command supports
func ValidateOutputFormat(format string, allowed ...OutputFormat) error {
	names := make([]string, len(allowed))
	for i, f := range allowed {
		if OutputFormat(strings.ToLower(format)) == f {
			return nil
		}
		names[i] = string(f)
	}
	return fmt.Errorf("invalid output format: %s (must be one of: %s)", format, strings.Join(names, ", "))
}

// ValidateLimit rejects negative result limits; 0 means unlimited
func ValidateLimit(limit int) error {
	if limit < 0 {
		return fmt.Errorf("invalid limit: %d (must be 0 or greater)", limit)
	}
	return nil
}
