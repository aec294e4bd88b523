package main

import (
	"sort"
)

// WordBank is the static, language-partitioned catalog of categories and
// their word lists. It holds no mutable state; every method is a pure
// lookup.
type WordBank struct {
	languages map[string][]Category
	aliases   map[string]string
}

var defaultWordBank = NewWordBank(wordCatalog, legacyCategoryIDs)

func NewWordBank(languages map[string][]Category, aliases map[string]string) *WordBank {
	return &WordBank{
		languages: languages,
		aliases:   aliases,
	}
}

func (wb *WordBank) HasLanguage(lang string) bool {
	_, ok := wb.languages[lang]
	return ok
}

func (wb *WordBank) Languages() []string {
	langs := make([]string, 0, len(wb.languages))
	for lang := range wb.languages {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Categories returns the full catalog for a language, in catalog order.
func (wb *WordBank) Categories(lang string) []Category {
	return wb.languages[lang]
}

// canonical maps a client-supplied category id to its canonical key.
func (wb *WordBank) canonical(id string) string {
	if key, ok := wb.aliases[id]; ok {
		return key
	}
	return id
}

// Resolve maps a set of category ids against a language's catalog. Unknown
// ids and categories with empty word lists are skipped; legacy ids resolve
// through the alias table. An empty result signals the caller to fall back
// to the full catalog.
func (wb *WordBank) Resolve(lang string, ids []string) []Category {
	catalog := wb.languages[lang]
	if len(catalog) == 0 {
		return nil
	}

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[wb.canonical(id)] = true
	}

	resolved := make([]Category, 0, len(ids))
	for _, category := range catalog {
		if wanted[category.Key] && len(category.Words) > 0 {
			resolved = append(resolved, category)
		}
	}
	return resolved
}

// Words returns the union of the word lists for the given category ids,
// falling back to every category of the language when none resolve.
func (wb *WordBank) Words(lang string, ids []string) []string {
	categories := wb.Resolve(lang, ids)
	if len(categories) == 0 {
		categories = wb.languages[lang]
	}

	words := make([]string, 0, 20*len(categories))
	for _, category := range categories {
		words = append(words, category.Words...)
	}
	return words
}
