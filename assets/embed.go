// Package assets embeds the default word list used when no word source is configured.
package assets

import (
	_ "embed"
)

// DefaultWordsName labels the embedded list in logs and cache fingerprints.
const DefaultWordsName = "embedded:words.txt"

//go:embed words.txt
var defaultWords []byte

// DefaultWords returns the embedded word list, one word per line.
func DefaultWords() []byte {
	return defaultWords
}
