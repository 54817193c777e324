package services

import (
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	domesticPhoneRegex       = regexp.MustCompile(`^(\+91[\-\s]?)?[6-9]\d{9}$`)
	domesticPostalRegex      = regexp.MustCompile(`^\d{6}$`)
	internationalPhoneRegex  = regexp.MustCompile(`^\+?[0-9\s\-]{7,15}$`)
	internationalPostalRegex = regexp.MustCompile(`^[A-Za-z0-9\s\-]{3,10}$`)
)

// ShippingAddress is the address block submitted with an order.
type ShippingAddress struct {
	FullName     string
	Email        string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string
}

// IsDomestic reports whether country names India.
func IsDomestic(country string) bool {
	c := strings.TrimSpace(country)
	return strings.EqualFold(c, "India") || strings.EqualFold(c, "IN")
}

func validateEmail(email string) error {
	if email == "" {
		return invalid("email", "email is required")
	}
	if !emailRegex.MatchString(email) {
		return invalid("email", "invalid email format")
	}
	return nil
}

// ValidateAddress checks required fields and the phone and postal code
// formats for the address's country.
func ValidateAddress(a ShippingAddress) error {
	required := []struct {
		field string
		value string
	}{
		{"fullName", a.FullName},
		{"email", a.Email},
		{"phone", a.Phone},
		{"addressLine1", a.AddressLine1},
		{"city", a.City},
		{"state", a.State},
		{"postalCode", a.PostalCode},
		{"country", a.Country},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return invalid(r.field, r.field+" is required")
		}
	}

	if err := validateEmail(strings.TrimSpace(a.Email)); err != nil {
		return err
	}

	phone := strings.TrimSpace(a.Phone)
	postal := strings.TrimSpace(a.PostalCode)
	if IsDomestic(a.Country) {
		if !domesticPhoneRegex.MatchString(phone) {
			return invalid("phone", "invalid phone number")
		}
		if !domesticPostalRegex.MatchString(postal) {
			return invalid("postalCode", "invalid PIN code: must be 6 digits")
		}
		return nil
	}

	if !internationalPhoneRegex.MatchString(phone) {
		return invalid("phone", "invalid phone number")
	}
	if !internationalPostalRegex.MatchString(postal) {
		return invalid("postalCode", "invalid postal code")
	}
	return nil
}
