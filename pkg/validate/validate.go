package validate

import "regexp"

var (
	utoridPattern   = regexp.MustCompile(`^[a-zA-Z0-9]{7,8}$`)
	uoftEmailSuffix = regexp.MustCompile(`@(mail\.)?utoronto\.ca$`)

	hasUpper   = regexp.MustCompile(`[A-Z]`)
	hasLower   = regexp.MustCompile(`[a-z]`)
	hasDigit   = regexp.MustCompile(`[0-9]`)
	hasSpecial = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

func IsUtorid(s string) bool {
	return utoridPattern.MatchString(s)
}

func IsCampusEmail(s string) bool {
	return uoftEmailSuffix.MatchString(s)
}

// IsStrongPassword requires 8-20 characters with at least one upper, one
// lower, one digit and one special character.
func IsStrongPassword(s string) bool {
	if len(s) < 8 || len(s) > 20 {
		return false
	}
	return hasUpper.MatchString(s) &&
		hasLower.MatchString(s) &&
		hasDigit.MatchString(s) &&
		hasSpecial.MatchString(s)
}
