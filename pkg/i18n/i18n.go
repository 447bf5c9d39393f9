// Package i18n traduce los mensajes visibles para el usuario según Accept-Language.
// Los mensajes se identifican por un código estable (el mismo que viaja en "code").
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var supported = []language.Tag{
	language.Spanish, // por defecto
	language.English,
	language.TraditionalChinese,
}

// Translator resuelve códigos a textos localizados.
type Translator struct {
	matcher  language.Matcher
	printers map[language.Tag]*message.Printer
}

// New construye el catálogo en memoria con todas las traducciones.
func New() *Translator {
	b := catalog.NewBuilder(catalog.Fallback(language.Spanish))
	for code, m := range messages {
		_ = b.SetString(language.Spanish, code, m.es)
		_ = b.SetString(language.English, code, m.en)
		_ = b.SetString(language.TraditionalChinese, code, m.zh)
	}
	t := &Translator{
		matcher:  language.NewMatcher(supported),
		printers: make(map[language.Tag]*message.Printer, len(supported)),
	}
	for _, tag := range supported {
		t.printers[tag] = message.NewPrinter(tag, message.Catalog(b))
	}
	return t
}

// Match elige el idioma soportado más cercano al header Accept-Language.
func (t *Translator) Match(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return language.Spanish
	}
	_, idx, conf := t.matcher.Match(tags...)
	if conf == language.No {
		return language.Spanish
	}
	return supported[idx]
}

// Message devuelve el texto de code en el idioma pedido. Si el código no está
// en el catálogo devuelve fallback.
func (t *Translator) Message(acceptLanguage, code, fallback string) string {
	if _, ok := messages[code]; !ok {
		return fallback
	}
	return t.printers[t.Match(acceptLanguage)].Sprintf(code)
}
