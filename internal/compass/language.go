package compass

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used for empty or unrecognized language codes.
const DefaultLanguage = "English"

var outputLanguages = map[string]string{
	"en":    DefaultLanguage,
	"zh-CN": "Simplified Chinese (简体中文)",
	"zh-TW": "Traditional Chinese (繁體中文)",
}

// OutputLanguage returns the full language name the report is written in.
// Codes are canonicalized first, so "zh-cn" and "zh_TW" are recognized.
func OutputLanguage(code string) string {
	code = strings.ReplaceAll(strings.TrimSpace(code), "_", "-")
	if code == "" {
		return DefaultLanguage
	}
	if name, ok := outputLanguages[code]; ok {
		return name
	}

	tag, err := language.Parse(code)
	if err != nil {
		return DefaultLanguage
	}
	if name, ok := outputLanguages[tag.String()]; ok {
		return name
	}
	return DefaultLanguage
}
