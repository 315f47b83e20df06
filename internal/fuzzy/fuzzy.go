// Package fuzzy puntúa la similitud entre títulos (0..100) y elige el mejor
// candidato para una búsqueda con errores de tipeo ("Harry Poter").
//
// Los puntajes siguen la composición clásica ratio / partial / token sort /
// token set y el WRatio ponderado. La similitud base es
// (len(a)+len(b)-indel) / (len(a)+len(b)), donde indel es la distancia con solo
// inserciones y borrados: una sustitución cuesta 2, igual que en thefuzz.
package fuzzy

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

const (
	partialScale = 0.90
	tokenScale   = 0.95
)

// Process normaliza un texto: minúsculas, todo lo que no sea letra, dígito o
// '_' pasa a espacio, y se recortan los extremos.
func Process(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.TrimSpace(b.String())
}

// Ratio similitud normalizada entre dos textos ya procesados.
func Ratio(a, b string) int {
	return round(ratio([]rune(a), []rune(b)))
}

func ratio(a, b []rune) float64 {
	total := len(a) + len(b)
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	return 100 * float64(total-indel(a, b)) / float64(total)
}

// indel = len(a) + len(b) - 2*LCS(a, b).
func indel(a, b []rune) int {
	return len(a) + len(b) - 2*lcs(a, b)
}

// lcs largo de la subsecuencia común más larga, DP con dos filas.
func lcs(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				cur[j] = prev[j-1] + 1
			case prev[j] >= cur[j-1]:
				cur[j] = prev[j]
			default:
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// PartialRatio compara el texto corto contra cada ventana del mismo largo
// dentro del texto largo y devuelve la mejor.
func PartialRatio(a, b string) int {
	return round(partialRatio([]rune(a), []rune(b)))
}

func partialRatio(a, b []rune) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	short, long := a, b
	if len(short) > len(long) {
		short, long = long, short
	}
	n := len(short)
	best := 0.0
	for i := 0; i+n <= len(long); i++ {
		r := ratio(short, long[i:i+n])
		if r > best {
			best = r
			if best == 100 {
				break
			}
		}
	}
	return best
}

// TokenSortRatio compara los tokens ordenados alfabéticamente.
func TokenSortRatio(a, b string) int {
	return Ratio(sortedTokens(a), sortedTokens(b))
}

// PartialTokenSortRatio igual que TokenSortRatio pero con PartialRatio.
func PartialTokenSortRatio(a, b string) int {
	return PartialRatio(sortedTokens(a), sortedTokens(b))
}

// TokenSetRatio compara intersección y diferencias de los conjuntos de tokens.
func TokenSetRatio(a, b string) int {
	return tokenSet(a, b, Ratio)
}

// PartialTokenSetRatio igual que TokenSetRatio pero con PartialRatio.
func PartialTokenSetRatio(a, b string) int {
	return tokenSet(a, b, PartialRatio)
}

func tokenSet(a, b string, score func(string, string) int) int {
	ta, tb := tokenSetOf(a), tokenSetOf(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	var sect, diffAB, diffBA []string
	for t := range ta {
		if _, ok := tb[t]; ok {
			sect = append(sect, t)
		} else {
			diffAB = append(diffAB, t)
		}
	}
	for t := range tb {
		if _, ok := ta[t]; !ok {
			diffBA = append(diffBA, t)
		}
	}
	sort.Strings(sect)
	sort.Strings(diffAB)
	sort.Strings(diffBA)

	s := strings.Join(sect, " ")
	ab := strings.TrimSpace(s + " " + strings.Join(diffAB, " "))
	ba := strings.TrimSpace(s + " " + strings.Join(diffBA, " "))

	best := score(ab, ba)
	if s != "" {
		if v := score(s, ab); v > best {
			best = v
		}
		if v := score(s, ba); v > best {
			best = v
		}
	}
	return best
}

// WRatio es el puntaje ponderado usado para elegir títulos. Con largos
// parecidos usa ratio y token ratios; cuando uno es >= 1.5 veces más largo
// pasa a las variantes parciales (escaladas por 0.9, o 0.6 si es >8 veces).
func WRatio(a, b string) int {
	pa, pb := Process(a), Process(b)
	return wratio(pa, pb)
}

func wratio(pa, pb string) int {
	la, lb := len([]rune(pa)), len([]rune(pb))
	if la == 0 || lb == 0 {
		return 0
	}

	base := float64(Ratio(pa, pb))
	lenRatio := float64(max(la, lb)) / float64(min(la, lb))

	if lenRatio < 1.5 {
		tsor := float64(TokenSortRatio(pa, pb)) * tokenScale
		tser := float64(TokenSetRatio(pa, pb)) * tokenScale
		return round(math.Max(base, math.Max(tsor, tser)))
	}

	scale := partialScale
	if lenRatio > 8 {
		scale = 0.6
	}
	partial := float64(PartialRatio(pa, pb)) * scale
	ptsor := float64(PartialTokenSortRatio(pa, pb)) * tokenScale * scale
	ptser := float64(PartialTokenSetRatio(pa, pb)) * tokenScale * scale
	return round(math.Max(math.Max(base, partial), math.Max(ptsor, ptser)))
}

func sortedTokens(s string) string {
	toks := strings.Fields(s)
	sort.Strings(toks)
	return strings.Join(toks, " ")
}

func tokenSetOf(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, t := range strings.Fields(s) {
		out[t] = struct{}{}
	}
	return out
}

// round redondea al par más cercano, como round() de Python.
func round(f float64) int {
	return int(math.RoundToEven(f))
}
