package payload

import "strings"

var unsafeChars = strings.NewReplacer(
	"<", "_", ">", "_", ":", "_", `"`, "_",
	"/", "_", `\`, "_", "|", "_", "?", "_", "*", "_",
)

// Sanitize replaces characters that are not allowed in file names.
func Sanitize(s string) string {
	return unsafeChars.Replace(s)
}

// Filename is the PNG file name a card with payload p is written to.
func Filename(p string) string {
	return Sanitize(p) + ".png"
}

// Matches reports whether a decoded QR payload belongs to the file base name.
func Matches(decoded, base string) bool {
	return Filename(decoded) == base
}
