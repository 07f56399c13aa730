package domain

import "strings"

// Alphabet is the sampling domain for identifiers, in display order.
const Alphabet = "abcdefghijklmnopqrstuvwxyz@ABCDEFGHIJKLMNOPQRSTUVWXYZ#0123456789$!&*(+=-"

// DefaultLength is the length used when the caller does not ask for one.
const DefaultLength = 20

// MaxLength bounds identifiers requested over the network.
const MaxLength = 4096

// Identifier is a generated serial. Two identifiers may be equal.
type Identifier string

func (id Identifier) String() string { return string(id) }

// Len returns the number of characters in the identifier.
func (id Identifier) Len() int { return len(id) }

// Valid reports whether every character of id belongs to Alphabet.
func (id Identifier) Valid() bool {
	for _, r := range string(id) {
		if !strings.ContainsRune(Alphabet, r) {
			return false
		}
	}
	return true
}

// CheckLength rejects negative lengths.
func CheckLength(length int) error {
	if length < 0 {
		return &LengthError{Length: length}
	}
	return nil
}
