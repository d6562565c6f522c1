// Package locale loads the engine's default popup labels.
package locale

import (
	"embed"
	"fmt"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed active.*.toml
var messageFiles embed.FS

// Message IDs for the labels the engine renders itself.
const (
	TitleSuccess = "NotificationTitleSuccess"
	TitleError   = "NotificationTitleError"
	TitleInfo    = "NotificationTitleInfo"
	LabelOK      = "ActionLabelOK"
	LabelCancel  = "ActionLabelCancel"
)

var defaults = map[string]string{
	TitleSuccess: "Success",
	TitleError:   "Error",
	TitleInfo:    "Info",
	LabelOK:      "OK",
	LabelCancel:  "Cancel",
}

var (
	bundleOnce sync.Once
	bundle     *i18n.Bundle
	bundleErr  error
)

func loadBundle() (*i18n.Bundle, error) {
	bundleOnce.Do(func() {
		b := i18n.NewBundle(language.English)
		b.RegisterUnmarshalFunc("toml", toml.Unmarshal)

		entries, err := messageFiles.ReadDir(".")
		if err != nil {
			bundleErr = err
			return
		}
		for _, e := range entries {
			if _, err := b.LoadMessageFileFS(messageFiles, e.Name()); err != nil {
				bundleErr = fmt.Errorf("locale: %s: %w", e.Name(), err)
				return
			}
		}
		bundle = b
	})
	return bundle, bundleErr
}

// Labels resolves engine labels for one language. The zero value falls back
// to the English defaults.
type Labels struct {
	localizer *i18n.Localizer
}

// New returns Labels for the given BCP 47 tag, e.g. "en" or "es-AR".
func New(tag string) (Labels, error) {
	b, err := loadBundle()
	if err != nil {
		return Labels{}, err
	}
	if tag != "" {
		if _, err := language.Parse(tag); err != nil {
			return Labels{}, fmt.Errorf("locale: %q: %w", tag, err)
		}
	}
	return Labels{localizer: i18n.NewLocalizer(b, tag, language.English.String())}, nil
}

// Get returns the localized text for id.
func (l Labels) Get(id string) string {
	if l.localizer == nil {
		return defaults[id]
	}
	s, err := l.localizer.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{ID: id, Other: defaults[id]},
	})
	if err != nil {
		return defaults[id]
	}
	return s
}
