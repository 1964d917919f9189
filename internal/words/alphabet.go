// internal/words/alphabet.go
//
// Guessable letters per language.
// A word is only handed out when every letter has a guess control:
// A–Z for English, A–Z plus Ñ for Spanish. Accented vowels are folded to
// their base letter first (CANCIÓN → CANCION), Ñ is kept.

package words

import "strings"

var folds = strings.NewReplacer(
	"Á", "A", "É", "E", "Í", "I", "Ó", "O", "Ú", "U", "Ü", "U",
	"À", "A", "È", "E", "Ì", "I", "Ò", "O", "Ù", "U",
	"Ä", "A", "Ë", "E", "Ï", "I", "Ö", "O", "Â", "A", "Ê", "E", "Î", "I", "Ô", "O", "Û", "U",
)

// Letters returns the guessable letters of lang in display order.
func Letters(lang Language) []string {
	out := make([]string, 0, 27)
	for c := 'A'; c <= 'Z'; c++ {
		out = append(out, string(c))
		if c == 'N' && lang == Spanish {
			out = append(out, "Ñ")
		}
	}
	return out
}

// Fold uppercases w and strips accents from vowels.
func Fold(w string) string {
	return folds.Replace(strings.ToUpper(strings.TrimSpace(w)))
}

// Playable reports whether w is non-empty and every rune is a letter of lang.
func Playable(lang Language, w string) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		switch {
		case r >= 'A' && r <= 'Z':
		case r == 'Ñ' && lang == Spanish:
		default:
			return false
		}
	}
	return true
}
