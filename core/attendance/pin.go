package attendance

import "strings"

// pinLength is the size of the shared-secret PIN (last 4 digits of a phone
// number). This is a deliberately low-assurance scheme: the secret is
// publicly derivable and compared in plain text. It identifies "someone who
// knows the family's phone number", nothing stronger, and must not be
// mistaken for a credential system.
const pinLength = 4

// SanitizePIN strips everything but digits and truncates to the PIN length,
// mirroring what the kiosk input field does.
func SanitizePIN(input string) string {
	var b strings.Builder
	for _, r := range input {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == pinLength {
			break
		}
	}
	return b.String()
}

// VerifySecret reports whether candidate matches the stored secret.
// The stored secret is zero-padded to the PIN length so a phone number
// ending in "0042" stored as "42" still verifies.
func VerifySecret(secret, candidate string) bool {
	if len(candidate) != pinLength {
		return false
	}
	for len(secret) < pinLength {
		secret = "0" + secret
	}
	return secret == candidate
}
