package util

import "regexp"

// Same pattern the legacy deployment validated against; loosening it would
// admit identities the existing data never contains.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
