package storage

import (
	"context"
	"fmt"
	"strings"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ValidTheme reports whether name is a supported theme.
func ValidTheme(name string) bool {
	return name == ThemeLight || name == ThemeDark
}

// Theme returns the stored theme preference. Missing or unrecognised
// values read as ThemeLight.
func Theme(ctx context.Context, store Store) string {
	data, err := store.Get(ctx, KeyTheme)
	if err != nil {
		return ThemeLight
	}
	name := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if !ValidTheme(name) {
		return ThemeLight
	}
	return name
}

// SetTheme stores the theme preference.
func SetTheme(ctx context.Context, store Store, name string) error {
	if !ValidTheme(name) {
		return fmt.Errorf("storage: unknown theme %q", name)
	}
	if err := store.Put(ctx, KeyTheme, []byte(name)); err != nil {
		return fmt.Errorf("storage: write theme: %w", err)
	}
	return nil
}
