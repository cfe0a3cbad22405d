// Package payload builds the string encoded into each QR code. The same
// string, sanitized, names the card file, so scanners can map a code back
// to its card.
package payload

import (
	"fmt"
	"strings"

	"github.com/youruser/qrcard/internal/roster"
)

// Mode selects what a batch produces.
type Mode string

const (
	// ModeCardName draws the QR and the wrapped name on the background.
	ModeCardName Mode = "card-name"
	// ModeCard draws only the QR on the background.
	ModeCard Mode = "card"
	// ModeQR writes the bare QR code.
	ModeQR Mode = "qr"
)

// ParseMode validates a mode name. Empty selects ModeCardName.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.TrimSpace(s)); m {
	case "":
		return ModeCardName, nil
	case ModeCardName, ModeCard, ModeQR:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want card-name, card or qr)", s)
	}
}

// NeedsBackground reports whether the mode composes onto a template.
func (m Mode) NeedsBackground() bool {
	return m != ModeQR
}

// DrawsText reports whether the mode renders the name next to the QR.
func (m Mode) DrawsText() bool {
	return m == ModeCardName || m == ""
}

// Build returns "fullName group note" without a trailing space when note is empty.
func Build(fullName, group, note string) string {
	return strings.TrimSpace(fullName + " " + group + " " + note)
}

// ForRecord returns the payload of rec for the given mode. Only ModeCardName
// carries the note.
func ForRecord(rec roster.Record, group string, mode Mode) string {
	if mode.DrawsText() {
		return Build(rec.FullName, group, rec.Note)
	}
	return Build(rec.FullName, group, "")
}
