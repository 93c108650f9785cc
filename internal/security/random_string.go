package security

import (
	"crypto/rand"
	"errors"
)

var (
	ErrNegativeLength  = errors.New("length must be non-negative")
	ErrInvalidAlphabet = errors.New("alphabet must hold between 1 and 256 bytes")
)

// RandomString draws length bytes uniformly from alphabet using crypto/rand.
func RandomString(length int, alphabet string) (string, error) {
	switch {
	case length < 0:
		return "", ErrNegativeLength
	case length == 0:
		return "", nil
	case len(alphabet) == 0 || len(alphabet) > 256:
		return "", ErrInvalidAlphabet
	}

	// Random bytes at or above limit are redrawn to keep the distribution uniform.
	limit := 256 - 256%len(alphabet)
	result := make([]byte, 0, length)
	buffer := make([]byte, length+8)
	for len(result) < length {
		if _, err := rand.Read(buffer); err != nil {
			return "", err
		}
		for _, value := range buffer {
			if int(value) >= limit {
				continue
			}
			result = append(result, alphabet[int(value)%len(alphabet)])
			if len(result) == length {
				break
			}
		}
	}
	return string(result), nil
}
