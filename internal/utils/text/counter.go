// Package text provides utilities for text processing.
// Lengths across the application are measured in Unicode characters, never bytes,
// so that multi-byte titles and names get the same limits as ASCII ones.
package text

// CountRunes counts the number of Unicode characters (runes) in the given text.
//
//	CountRunes("Dragon")  // 6
//	CountRunes("Drache🐉") // 7
func CountRunes(text string) int {
	return len([]rune(text))
}
