// Package cipher holds the Caesar and Vigenère transforms and the facade that dispatches between them.
package cipher

import "CipherBot/internal/core/domain"

const alphabetSize = 26

// isLetter reports whether r is a Latin letter we know how to shift.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// ShiftCharacter moves a letter offset*dir places along the alphabet, keeping its case.
// Anything that is not a Latin letter comes back untouched.
func ShiftCharacter(r rune, offset int, dir domain.Direction) rune {
	if !isLetter(r) {
		return r
	}

	base := 'a'
	if r >= 'A' && r <= 'Z' {
		base = 'A'
	}

	index := int(r - base)
	// Reduce first so offset*dir cannot overflow for huge offsets.
	shift := (offset % alphabetSize) * int(dir)
	newIndex := ((index+shift)%alphabetSize + alphabetSize) % alphabetSize

	return base + rune(newIndex)
}
