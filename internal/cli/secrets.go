package cli

import "github.com/terraincognita07/healthsome/internal/security"

const (
	// No 0/O, 1/l/I.
	temporaryPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	secretKeyAlphabet         = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	secretKeyLength           = 48
)

func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}
	return security.RandomString(length, temporaryPasswordAlphabet)
}

func generateSecretKey() (string, error) {
	return security.RandomString(secretKeyLength, secretKeyAlphabet)
}
