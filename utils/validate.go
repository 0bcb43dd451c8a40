package utils

import (
	"net/url"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// IsObjectID reports whether id is a 24 hex character document id
func IsObjectID(id string) bool {
	if len(id) != 24 {
		return false
	}
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}

// IsEmail performs the same loose format check as the sign-in forms
func IsEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// PhoneDigits strips everything but digits
func PhoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsPhone accepts numbers with 10 or 11 digits once formatting is stripped
func IsPhone(phone string) bool {
	n := len(PhoneDigits(phone))
	return n == 10 || n == 11
}

// IsAbsoluteURL reports whether raw parses as a URL with a scheme
func IsAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && (u.Host != "" || u.Opaque != "")
}
