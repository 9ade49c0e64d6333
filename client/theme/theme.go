// Package theme persists the presentation theme preference. The value is a
// free-form string; Known lists the themes the app ships with.
package theme

import "github.com/example/taskflow/client/kv"

// Default is used when no preference has been saved.
const Default = "light"

// Known are the built-in theme identifiers.
var Known = []string{"light", "dark", "ocean", "sunset", "forest", "royal"}

// Load returns the saved theme, or Default when none is saved.
func Load(store *kv.Store) string {
	raw, found, err := store.Get(kv.KeyTheme)
	if err != nil || !found || len(raw) == 0 {
		return Default
	}
	return string(raw)
}

// Save persists the theme preference.
func Save(store *kv.Store, name string) error {
	return store.Set(kv.KeyTheme, []byte(name))
}
