package app

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldSearchTerm enlève les diacritiques et passe en minuscules, pour que la
// recherche LIKE du cache retrouve "Canción" avec "cancion". Le terme envoyé
// au serveur reste intact: WordPress fait son propre matching.
func foldSearchTerm(term string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, term)
	if err != nil {
		return strings.ToLower(term)
	}
	return strings.ToLower(folded)
}
