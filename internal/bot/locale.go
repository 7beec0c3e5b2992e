package bot

import (
	"log"
	"os"
	"path/filepath"

	"github.com/leonelquinteros/gotext"
	"golang.org/x/text/language"
)

const localesDir = "resources/locales"

// setupLocale loads the bot translations, untranslated strings are left as-is.
func setupLocale(locale string) {
	lang := localeLanguage(locale)
	if _, err := os.Stat(filepath.Join(localesDir, lang)); os.IsNotExist(err) && lang != "en" {
		log.Printf("warning: no translations for locale %q", locale)
	}

	gotext.Configure(localesDir, lang, "default")
}

// localeLanguage reduces a locale ("fr-CA", "fr_FR.UTF-8") to its base
// language, the level our catalogs are written at.
func localeLanguage(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		// Let the POSIX suffix go and try again.
		for k, c := range locale {
			if c == '.' || c == '@' {
				return localeLanguage(locale[:k])
			}
		}

		log.Printf("warning: invalid locale %q: %s", locale, err)
		return "en"
	}

	base, _ := tag.Base()
	return base.String()
}
