package fuzzy

// Match es el mejor candidato encontrado para una búsqueda.
type Match struct {
	Value string
	Score int
	Index int
}

// Matcher guarda los candidatos ya procesados para no normalizarlos en cada
// búsqueda. Es de solo lectura después de NewMatcher.
type Matcher struct {
	choices   []string
	processed []string
}

func NewMatcher(choices []string) *Matcher {
	m := &Matcher{
		choices:   choices,
		processed: make([]string, len(choices)),
	}
	for i, c := range choices {
		m.processed[i] = Process(c)
	}
	return m
}

func (m *Matcher) Len() int { return len(m.choices) }

// ExtractOne devuelve el candidato con mayor WRatio. Ante empate gana el
// primero. ok=false si la búsqueda queda vacía o no hay candidatos.
func (m *Matcher) ExtractOne(query string) (Match, bool) {
	q := Process(query)
	if q == "" || len(m.choices) == 0 {
		return Match{}, false
	}

	best := Match{Index: -1, Score: -1}
	for i, p := range m.processed {
		s := wratio(q, p)
		if s > best.Score {
			best = Match{Value: m.choices[i], Score: s, Index: i}
			if s == 100 {
				break
			}
		}
	}
	return best, true
}

// ExtractOne es el atajo sin Matcher precalculado.
func ExtractOne(query string, choices []string) (Match, bool) {
	return NewMatcher(choices).ExtractOne(query)
}
