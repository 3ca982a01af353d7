// Package readtime estimates how long a text takes to read.
package readtime

import "strings"

// avgReadWPM is the assumed reading speed in words per minute.
const avgReadWPM = 200

// Estimate returns the estimated reading time in whole minutes, rounded up.
// Empty text estimates to zero.
func Estimate(text string) int {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	return (words + avgReadWPM - 1) / avgReadWPM
}
