package markup

import "golang.org/x/text/unicode/bidi"

// IsRTL reports whether text contains strong right-to-left characters,
// which makes it either right-to-left or mixed-direction.
func IsRTL(text string) bool {
	for _, r := range text {
		if r < 0x0590 {
			continue
		}
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.R, bidi.AL:
			return true
		}
	}
	return false
}
