// Package stringutil converts OpenAPI names into valid TypeScript
// identifiers, including reserved word escaping, PascalCase/camelCase
// conversion, and synthetic type-name segments.
package stringutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// tsReservedWords contains TypeScript reserved words that cannot be used
// as identifiers. This covers JavaScript keywords plus the strict-mode
// and TypeScript-specific reservations that are invalid in declarations.
var tsReservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "enum": true, "export": true, "extends": true,
	"false": true, "finally": true, "for": true, "function": true, "if": true,
	"import": true, "in": true, "instanceof": true, "new": true, "null": true,
	"return": true, "super": true, "switch": true, "this": true, "throw": true,
	"true": true, "try": true, "typeof": true, "var": true, "void": true,
	"while": true, "with": true,
	// Strict mode reservations
	"implements": true, "interface": true, "let": true, "package": true,
	"private": true, "protected": true, "public": true, "static": true,
	"yield": true, "await": true,
}

// IsReservedWord reports whether name is a TypeScript reserved word.
// The check is exact: keywords are lowercase, so PascalCase names like
// "Class" are fine.
func IsReservedWord(name string) bool {
	return tsReservedWords[name]
}

// EscapeReservedWord escapes a TypeScript reserved word by appending an
// underscore. Non-reserved names pass through unchanged.
func EscapeReservedWord(name string) string {
	if tsReservedWords[name] {
		return name + "_"
	}
	return name
}

// isIdentRune reports whether r may appear in a TypeScript identifier
// after the first position.
func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$'
}

// PascalCase converts a string to PascalCase.
// Separators (underscore, hyphen, dot, slash, space) trigger capitalization
// of the next letter; the rest of each word is preserved.
//
// Examples:
//
//	"user_data" -> "UserData"
//	"some-name" -> "SomeName"
//	"petId" -> "PetId"
func PascalCase(s string) string {
	if s == "" {
		return ""
	}

	// Use golang.org/x/text/cases for proper Unicode title casing
	titleCaser := cases.Title(language.English, cases.NoLower)

	var result strings.Builder
	result.Grow(len(s))

	capitalizeNext := true

	for _, r := range s {
		if r == '_' || r == '-' || r == '.' || r == '/' || r == ' ' {
			capitalizeNext = true
			continue
		}
		if capitalizeNext {
			result.WriteString(titleCaser.String(string(r)))
			capitalizeNext = false
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// CamelCase converts a string to camelCase and escapes reserved words.
// Like PascalCase but with the first letter lowercase.
//
// Examples:
//
//	"pet_id" -> "petId"
//	"X-Request-Id" -> "xRequestId"
func CamelCase(s string) string {
	pascal := PascalCase(s)
	if pascal == "" {
		return ""
	}
	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return EscapeReservedWord(string(runes))
}

// SafeIdent converts a string into a valid TypeScript identifier while
// preserving the original spelling where possible. Invalid runes become
// underscores, a leading digit gets an underscore prefix, and reserved
// words are escaped. Used for factory function names derived from
// operationId values.
//
// Examples:
//
//	"getPetById" -> "getPetById"
//	"get-pet" -> "get_pet"
//	"3users" -> "_3users"
//	"delete" -> "delete_"
func SafeIdent(s string) string {
	if s == "" {
		return "_"
	}

	var result strings.Builder
	result.Grow(len(s))

	for _, r := range s {
		if isIdentRune(r) {
			result.WriteRune(r)
		} else {
			result.WriteByte('_')
		}
	}

	name := result.String()
	if r := []rune(name)[0]; unicode.IsDigit(r) {
		name = "_" + name
	}

	return EscapeReservedWord(name)
}

// TypeName converts a string to a PascalCase TypeScript type name.
// It ensures the name starts with a letter and falls back to "Type"
// for names that normalize to nothing.
func TypeName(s string) string {
	name := PascalCase(s)
	if name == "" {
		return "Type"
	}

	// Strip runes that survived PascalCase but are invalid in identifiers
	var result strings.Builder
	result.Grow(len(name))
	for _, r := range name {
		if isIdentRune(r) {
			result.WriteRune(r)
		}
	}
	name = result.String()

	if name == "" {
		return "Type"
	}
	if !unicode.IsLetter([]rune(name)[0]) {
		name = "T" + name
	}
	return name
}

// IsIdentifier reports whether s can appear bare as a TypeScript
// identifier: a non-digit identifier rune followed by identifier runes.
// Reserved words count as identifiers here, since property positions
// accept them.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if !isIdentRune(r) {
			return false
		}
		if i == 0 && unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// TitleSegment normalizes a schema path segment for synthetic type names:
// the first letter is upper-cased (rest preserved) and runes invalid in
// identifiers are replaced with underscores. Nested shapes are named by
// joining the parent name and the segment with "$".
//
// Examples:
//
//	"category" -> "Category"
//	"petId" -> "PetId"
//	"pet-photo" -> "Pet_photo"
func TitleSegment(s string) string {
	if s == "" {
		return ""
	}

	titleCaser := cases.Title(language.English, cases.NoLower)

	var result strings.Builder
	result.Grow(len(s))

	for i, r := range s {
		switch {
		case i == 0:
			if isIdentRune(r) {
				result.WriteString(titleCaser.String(string(r)))
			} else {
				result.WriteByte('_')
			}
		case isIdentRune(r):
			result.WriteRune(r)
		default:
			result.WriteByte('_')
		}
	}

	return result.String()
}

// CleanDescription prepares an OpenAPI description for use in generated
// comments. It removes newlines, trims whitespace, and truncates long
// descriptions.
func CleanDescription(s string) string {
	const maxLen = 200

	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.TrimSpace(s)
	if len(s) > maxLen {
		// Truncate at rune boundary to avoid splitting multi-byte characters
		runes := []rune(s)
		if len(runes) > maxLen-3 {
			s = string(runes[:maxLen-3]) + "..."
		}
	}
	return s
}
