// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package i18n resolves the response language of a request and exposes message
printers backed by the golang.org/x/text catalog.

Message keys are the English source strings. Translations are registered in
init functions, one file per locale, and looked up by [Printer].

Resolution order:

  - The "lang" query parameter.
  - The Accept-Language header.
  - [Default].
*/
package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LangParam is the query parameter used to force a language.
const LangParam = "lang"

var (
	supported = []language.Tag{language.English, language.Russian}
	matcher   = language.NewMatcher(supported)
)

// Supported returns the list of languages with a registered catalog.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// Default returns the fallback language.
func Default() language.Tag {
	return language.English
}

// Printer returns a message printer for tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// ParseTag parses value and reports whether it maps to a supported language.
func ParseTag(value string) (language.Tag, bool) {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return Default(), false
	}
	matched, _, confidence := matcher.Match(tag)
	if confidence == language.No {
		return Default(), false
	}
	return base(matched), true
}

// ResolveTag determines the best supported language for the request.
func ResolveTag(request *http.Request) language.Tag {
	if request == nil {
		return Default()
	}

	if value := request.URL.Query().Get(LangParam); value != "" {
		if tag, ok := ParseTag(value); ok {
			return tag
		}
	}

	if accept := strings.TrimSpace(request.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			matched, _, confidence := matcher.Match(tags...)
			if confidence != language.No {
				return base(matched)
			}
		}
	}

	return Default()
}

// base strips the matcher's "-u-rg" extensions so the tag hits the catalog entry.
func base(tag language.Tag) language.Tag {
	root, _ := tag.Base()
	resolved, err := language.Compose(root)
	if err != nil {
		return Default()
	}
	return resolved
}
