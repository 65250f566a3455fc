package validation

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// commonSequences may not appear anywhere in a password, case-insensitively.
var commonSequences = []string{"password", "12345678", "qwertyui"}

var passwordRules = map[string]validator.Func{
	"haslower":     anyRune(unicode.IsLower),
	"hasupper":     anyRune(unicode.IsUpper),
	"hasdigit":     anyRune(unicode.IsDigit),
	"hasspecial":   anyRune(isSpecial),
	"nowhitespace": noRune(unicode.IsSpace),
	"latin":        noRune(func(r rune) bool { return r > unicode.MaxASCII }),
	"notcommon":    notCommon,
}

func isSpecial(r rune) bool {
	return r <= unicode.MaxASCII && (unicode.IsPunct(r) || unicode.IsSymbol(r))
}

func anyRune(pred func(rune) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return strings.IndexFunc(fl.Field().String(), pred) >= 0
	}
}

func noRune(pred func(rune) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return strings.IndexFunc(fl.Field().String(), pred) < 0
	}
}

func notCommon(fl validator.FieldLevel) bool {
	s := strings.ToLower(fl.Field().String())
	for _, seq := range commonSequences {
		if strings.Contains(s, seq) {
			return false
		}
	}
	return true
}
