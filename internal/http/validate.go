package http

import (
	"regexp"

	"github.com/salvatoluice/naswasoko-engine/internal/domain"
)

// Kenyan mobile numbers: Safaricom-style 07xx and 01xx prefixes, ten
// digits total.
var phonePattern = regexp.MustCompile(`^0[17]\d{8}$`)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// validateAddress performs the form layer's boundary checks: every field
// present, phone and email well-formed. Returns a field/code pair for
// the first failure.
func validateAddress(a domain.ShippingAddress) (field, code string, ok bool) {
	required := []struct {
		name  string
		value string
	}{
		{"first_name", a.FirstName},
		{"last_name", a.LastName},
		{"address", a.Address},
		{"city", a.City},
		{"county", a.County},
		{"postal_code", a.PostalCode},
		{"phone", a.Phone},
		{"email", a.Email},
	}
	for _, f := range required {
		if f.value == "" {
			return f.name, "missing_field", false
		}
	}

	if !validPhone(a.Phone) {
		return "phone", "invalid_phone", false
	}
	if !validEmail(a.Email) {
		return "email", "invalid_email", false
	}
	return "", "", true
}
