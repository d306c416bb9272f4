// Пакет search — составной поисковый запрос «все термы должны совпасть».
package search

import (
	"strings"
	"unicode"
)

// DisplayNameField — поле, по которому идёт автодополнение.
const DisplayNameField = "display_name"

// Autocomplete — подусловие: слово в поле Path начинается с Query.
type Autocomplete struct {
	Path  string `json:"path"`
	Query string `json:"query"`
}

// Request — составной запрос; все условия Must объединяются через AND.
// Пустой Must — запрос, которому не соответствует ни один товар.
type Request struct {
	Must []Autocomplete `json:"must"`
}

// Terms — термы запроса в исходном порядке.
func (r Request) Terms() []string {
	terms := make([]string, 0, len(r.Must))
	for _, c := range r.Must {
		terms = append(terms, c.Query)
	}
	return terms
}

// Composer — строит Request из свободного текста.
type Composer struct {
	path string
}

// NewComposer — конструктор; поиск ведётся по display_name.
func NewComposer() *Composer { return &Composer{path: DisplayNameField} }

// Compose — делит текст по пробельным символам; регистр и пунктуация не меняются.
func (c *Composer) Compose(queryText string) Request {
	tokens := strings.Fields(queryText)
	req := Request{Must: make([]Autocomplete, 0, len(tokens))}
	for _, tok := range tokens {
		req.Must = append(req.Must, Autocomplete{Path: c.path, Query: tok})
	}
	return req
}

// Matches — эталонная семантика индекса автодополнения: каждое условие совпадает,
// если какое-то слово значения (разделитель — пробел) начинается с терма без учёта регистра.
func (r Request) Matches(displayName string) bool {
	if len(r.Must) == 0 {
		return false
	}
	words := strings.FieldsFunc(strings.ToLower(displayName), unicode.IsSpace)
	for _, clause := range r.Must {
		if !anyHasPrefix(words, strings.ToLower(clause.Query)) {
			return false
		}
	}
	return true
}

func anyHasPrefix(words []string, prefix string) bool {
	for _, w := range words {
		if strings.HasPrefix(w, prefix) {
			return true
		}
	}
	return false
}
