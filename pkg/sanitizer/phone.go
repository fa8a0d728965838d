package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Regions tried in order when a number has no international prefix.
var fallbackRegions = []string{"US", "GB", "FR", "ES", "IT", "DE", "PT", "MA"}

// NormalizePhone converts a phone number to E.164. Unparseable input is
// returned trimmed so the e164 validator can reject it.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	for _, region := range fallbackRegions {
		parsed, err := phonenumbers.Parse(phone, region)
		if err != nil || !phonenumbers.IsValidNumber(parsed) {
			continue
		}
		return phonenumbers.Format(parsed, phonenumbers.E164)
	}
	return phone
}
