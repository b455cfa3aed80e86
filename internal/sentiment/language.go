package sentiment

import (
	"regexp"

	"golang.org/x/text/unicode/norm"
)

const (
	LanguageEnglish    = "en"
	LanguageVietnamese = "vi"
)

var vietnameseDiacritics = regexp.MustCompile(`(?i)[àáạảãâầấậẩẫăằắặẳẵèéẹẻẽêềếệểễìíịỉĩòóọỏõôồốộổỗơờớợởỡùúụủũưừứựửữỳýỵỷỹđ]`)

// DetectLanguage returns "vi" when text contains any Vietnamese diacritic
// character and "en" otherwise. Text is NFC-normalised first so decomposed
// input (base letter plus combining mark) still matches.
func DetectLanguage(text string) string {
	if vietnameseDiacritics.MatchString(norm.NFC.String(text)) {
		return LanguageVietnamese
	}
	return LanguageEnglish
}
