package leads

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const phoneRegion = "US"

// normalizePhone formats a US phone number as E.164. It reports false when
// the number cannot be parsed or is not a dialable US number.
func normalizePhone(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", true
	}

	number, err := phonenumbers.Parse(trimmed, phoneRegion)
	if err != nil {
		return "", false
	}
	if !phonenumbers.IsValidNumberForRegion(number, phoneRegion) {
		return "", false
	}
	return phonenumbers.Format(number, phonenumbers.E164), true
}
