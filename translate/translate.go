// Package translate formats user-visible gritvm messages in the
// language of the current locale.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// DefaultLocale is used when the host locale cannot be determined.
const DefaultLocale = "en-US"

var (
	printer     *message.Printer
	printerOnce sync.Once
)

func setup() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("gritvm: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{DefaultLocale}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	printerOnce.Do(setup)
	return printer.Sprintf(key, args...)
}
