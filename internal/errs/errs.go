package errs

import "fmt"

type Code string

const (
	MissingSourceURI  Code = "MISSING_SOURCE_URI"
	MissingBundleID   Code = "MISSING_BUNDLE_ID"
	AmbiguousEntry    Code = "AMBIGUOUS_ENTRY"
	ExactWithRegex    Code = "EXACT_WITH_REGEX"
	NegativeSlotIndex Code = "NEGATIVE_SLOT_INDEX"
)

var messages = map[Code]string{
	MissingSourceURI: `Missing source: provide at least one catalog URI

Examples:
  altcat add https://example.com/repo.json
  altcat add https://a.example/repo.json https://b.example/repo.json`,

	MissingBundleID: `Missing target: provide the bundle identifier of an app

Examples:
  altcat %[1]s com.example.app
  altcat search example     # find the bundle identifier first`,

	AmbiguousEntry: `Ambiguous app: %[2]s is published by more than one source

Usage:
  altcat %[1]s %[2]s --slot N

Sources:
%[3]s
Reason:
  each registered source is independent; pick the one to use with --slot.`,

	ExactWithRegex: `Invalid flag combination: cannot combine --exact with --regex

Usage:
  altcat search delta --exact
  altcat search '^del' --regex`,

	NegativeSlotIndex: `Invalid slot: --slot must be 0 or greater (see "altcat sources")`,
}

func Msg(code Code, a ...any) string {
	msg := messages[code]
	if msg == "" {
		msg = string(code)
	}
	return fmt.Sprintf(msg, a...)
}
