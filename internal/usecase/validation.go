package usecase

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/method3fitness/pike13-ghl-sync/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateClientRecord decides whether a report row is actionable at all.
// Invalid records are skipped and counted, never processed in either pass.
func ValidateClientRecord(record *entity.ClientRecord) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(record.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if !isValidEmail(record.Email) {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if strings.TrimSpace(record.FullName) == "" {
		errors = append(errors, ValidationError{"full_name", "is required"})
	}

	if record.DaysSinceLastVisit == nil {
		errors = append(errors, ValidationError{"days_since_last_visit", "is missing"})
	} else if *record.DaysSinceLastVisit < 0 {
		errors = append(errors, ValidationError{"days_since_last_visit", "must be non-negative"})
	}

	return errors
}

func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	// mail.ParseAddress accepts display names ("Bob <b@x.co>"); the report
	// should carry a bare address, so require an exact match.
	if addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && at < len(email)-1
}
