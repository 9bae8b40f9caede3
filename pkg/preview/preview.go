// Package preview builds the short notification body shown for a chat message.
package preview

// Limit is the number of characters kept before the preview is cut.
const Limit = 100

// Ellipsis is appended whenever content was actually cut.
const Ellipsis = "..."

// Truncate returns the first Limit characters of content, with Ellipsis
// appended only if something was removed. Counting is per rune so multi-byte
// text never gets split mid-character.
func Truncate(content string) string {
	runes := []rune(content)
	if len(runes) <= Limit {
		return content
	}
	return string(runes[:Limit]) + Ellipsis
}
