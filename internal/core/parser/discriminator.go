package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Discriminator reads the variant tag off a raw compound object.
// It returns the tag and the body holding the node's fields.
type Discriminator interface {
	Discriminate(raw Raw) (tag string, body Raw, ok bool)
}

// FieldDiscriminator reads the tag from a named string field of the object itself:
// {"type": "Shelf", "items": [...]}.
type FieldDiscriminator string

// Discriminate implements Discriminator.
func (f FieldDiscriminator) Discriminate(raw Raw) (string, Raw, bool) {
	tag, ok := raw[string(f)].(string)
	if !ok || tag == "" {
		return "", nil, false
	}
	return tag, raw, true
}

// DefaultDiscriminator is used when a builder is created without one.
const DefaultDiscriminator = FieldDiscriminator("type")

// wrapperSuffixes are the key endings that mark a wrapper key among siblings.
var wrapperSuffixes = []string{
	"Renderer", "ViewModel", "Model", "Action", "Command", "Continuation", "Endpoint",
}

// WrapperDiscriminator reads the tag from the single key wrapping the body:
// {"musicShelfRenderer": {...}} is a MusicShelf.
//
// When the object has several keys, the first key in sorted order that holds an
// object and ends in a known wrapper suffix is used.
type WrapperDiscriminator struct{}

// Discriminate implements Discriminator.
func (WrapperDiscriminator) Discriminate(raw Raw) (string, Raw, bool) {
	if len(raw) == 1 {
		for k, v := range raw {
			body, ok := AsRaw(v)
			if !ok {
				return "", nil, false
			}
			return SanitizeTag(k), body, true
		}
	}
	for _, k := range raw.Keys() {
		if !hasWrapperSuffix(k) {
			continue
		}
		if body, ok := AsRaw(raw[k]); ok {
			return SanitizeTag(k), body, true
		}
	}
	return "", nil, false
}

func hasWrapperSuffix(key string) bool {
	for _, s := range wrapperSuffixes {
		if strings.HasSuffix(key, s) && len(key) > len(s) {
			return true
		}
	}
	return false
}

// SanitizeTag turns a wrapper key into a variant tag: the first letter is
// upper-cased, "Renderer" and "Model" are dropped and "Radio" becomes "Mix".
func SanitizeTag(key string) string {
	if key == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(key)
	tag := string(unicode.ToUpper(r)) + key[size:]
	tag = strings.ReplaceAll(tag, "Renderer", "")
	tag = strings.ReplaceAll(tag, "Model", "")
	tag = strings.ReplaceAll(tag, "Radio", "Mix")
	return strings.TrimSpace(tag)
}
