// Package obfuscate reverses the text obfuscation scheme stream hosters embed in their pages.
//
// The transform chain is an interoperability contract reproduced byte-for-byte:
// reordering or "improving" any step breaks decoding of pages in the wild.
package obfuscate

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/samber/mo"
)

// markers are multi-character noise literals injected into the payload between encoding stages.
var markers = []string{"@#", "^^", "~@", "%?", "*~", "!!", "#&"}

// shiftOffset is the fixed code point offset applied to every character of the third stage.
const shiftOffset = 3

// Decode recovers the JSON payload hidden inside a raw script block.
// The input is a JSON array holding a single obfuscated string. The chain, in order:
// rot13, marker removal, base64 decode, character shift, full reversal, base64 decode.
// Any stage failure aborts the whole decode; no partial results are surfaced.
func Decode(raw string) mo.Option[any] {
	var array []string
	if err := json.Unmarshal([]byte(raw), &array); err != nil || len(array) == 0 {
		return mo.None[any]()
	}

	step1 := rot13(array[0])
	step2 := stripMarkers(step1)
	step3, ok := safeBase64Decode(step2)
	if !ok {
		return mo.None[any]()
	}
	step4 := shiftChars(step3, shiftOffset)
	step5 := reverse(step4)
	step6, ok := safeBase64Decode(step5)
	if !ok {
		return mo.None[any]()
	}

	var payload any
	if err := json.Unmarshal([]byte(step6), &payload); err != nil {
		return mo.None[any]()
	}
	return mo.Some(payload)
}

// rot13 applies the classic 13-position alphabetic substitution; non-letters pass through.
func rot13(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, c := range text {
		switch {
		case c >= 'A' && c <= 'Z':
			b.WriteRune((c-'A'+13)%26 + 'A')
		case c >= 'a' && c <= 'z':
			b.WriteRune((c-'a'+13)%26 + 'a')
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// stripMarkers removes every occurrence of the fixed noise literals.
func stripMarkers(text string) string {
	for _, m := range markers {
		text = strings.ReplaceAll(text, m, "")
	}
	return text
}

// shiftChars subtracts offset from every character's code point.
// Characters that would go negative are kept as-is.
func shiftChars(text string, offset int32) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, c := range text {
		if c-offset >= 0 {
			b.WriteRune(c - offset)
		} else {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// reverse returns the string with its characters in reverse order.
func reverse(text string) string {
	runes := []rune(text)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// safeBase64Decode strips every non-base64 character, re-pads to a multiple of four and decodes.
func safeBase64Decode(encoded string) (string, bool) {
	var clean strings.Builder
	clean.Grow(len(encoded))
	for _, c := range encoded {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '+' || c == '/' || c == '=' {
			clean.WriteRune(c)
		}
	}

	padded := clean.String()
	if rem := len(padded) % 4; rem > 0 {
		padded += strings.Repeat("=", 4-rem)
	}

	decoded, err := base64.StdEncoding.DecodeString(padded)
	if err != nil {
		return "", false
	}
	return string(decoded), true
}
