package internal

import (
	"errors"
	"strings"

	"github.com/ttacon/libphonenumber"
)

var ErrPhoneNumber = errors.New("phone number must be in international format, e.g. +14155552671")

// NormalizeE164 parses an international number, tolerating spaces, dashes and brackets,
// and returns it in E.164 form.
func NormalizeE164(number string) (string, error) {
	number = strings.TrimSpace(number)
	if !strings.HasPrefix(number, "+") {
		return "", ErrPhoneNumber
	}
	pn, err := libphonenumber.Parse(number, "")
	if err != nil {
		return "", ErrPhoneNumber
	}
	return libphonenumber.Format(pn, libphonenumber.E164), nil
}
