package utils

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

type slugRewrite struct {
	pattern *regexp.Regexp
	label   string
}

var (
	camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

	// Applied in order. Keywords never overlap, so at most one rule
	// matches any given pair of words.
	pairedCategoryRewrites = []slugRewrite{
		{regexp.MustCompile(`(?i)\b(home)\s*(garden|outdoor|indoor)\b`), "Home & Garden"},
		{regexp.MustCompile(`(?i)\b(health)\s*(beauty|wellness)\b`), "Health & Beauty"},
		{regexp.MustCompile(`(?i)\b(sports)\s*(outdoor|recreation)\b`), "Sports & Outdoors"},
		{regexp.MustCompile(`(?i)\b(toys)\s*(games|gaming)\b`), "Toys & Games"},
		{regexp.MustCompile(`(?i)\b(books)\s*(media|movies|music)\b`), "Books & Media"},
		{regexp.MustCompile(`(?i)\b(collectibles)\s*(art|antiques)\b`), "Collectibles & Art"},
		{regexp.MustCompile(`(?i)\b(music)\s*(instruments|instrument)\b`), "Music & Instruments"},
		{regexp.MustCompile(`(?i)\b(pets)\s*(animals|animal)\b`), "Pets & Animals"},
	}
)

// HumanizeSlug turns a category slug such as "home-garden" into its display
// label ("Home & Garden"). Known two-word categories are joined with an
// ampersand; anything else is title-cased word by word.
func HumanizeSlug(slug string) string {
	humanized := strings.ReplaceAll(slug, "-", " ")
	humanized = camelBoundary.ReplaceAllString(humanized, "${1} ${2}")

	for _, rewrite := range pairedCategoryRewrites {
		humanized = rewrite.pattern.ReplaceAllLiteralString(humanized, rewrite.label)
	}

	if strings.Contains(humanized, "&") {
		return humanized
	}

	words := strings.Split(humanized, " ")
	for i, word := range words {
		words[i] = capitalize(word)
	}
	return strings.Join(words, " ")
}

func capitalize(word string) string {
	first, size := utf8.DecodeRuneInString(word)
	if size == 0 {
		return word
	}
	return string(unicode.ToUpper(first)) + strings.ToLower(word[size:])
}
