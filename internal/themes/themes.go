// Package themes is the static registry of visual presets a form can use.
package themes

import (
	"fmt"
	"strconv"

	"foxform/internal/domains"
)

type Config struct {
	ID              domains.ThemePreset `json:"id"`
	Name            string              `json:"name"`
	PrimaryColor    string              `json:"primaryColor"`
	BackgroundColor string              `json:"backgroundColor"`
	TextColor       string              `json:"textColor"`
	AccentColor     string              `json:"accentColor"`
	FontFamily      string              `json:"fontFamily"`
}

var registry = map[domains.ThemePreset]Config{
	domains.ThemeMidnight: {
		ID:              domains.ThemeMidnight,
		Name:            "Midnight",
		PrimaryColor:    "#8B5CF6",
		BackgroundColor: "linear-gradient(135deg, #8B5CF6 0%, #7C3AED 35.36%, #6D28D9 70.71%)",
		TextColor:       "#FFFFFF",
		AccentColor:     "#A78BFA",
		FontFamily:      "'DM Sans', sans-serif",
	},
	domains.ThemeOcean: {
		ID:              domains.ThemeOcean,
		Name:            "Ocean",
		PrimaryColor:    "#0EA5E9",
		BackgroundColor: "linear-gradient(135deg, #0EA5E9 0%, #0284C7 35.36%, #0369A1 70.71%)",
		TextColor:       "#F0F9FF",
		AccentColor:     "#38BDF8",
		FontFamily:      "'Plus Jakarta Sans', sans-serif",
	},
	domains.ThemeSunset: {
		ID:              domains.ThemeSunset,
		Name:            "Sunset",
		PrimaryColor:    "#F97316",
		BackgroundColor: "linear-gradient(135deg, #F97316 0%, #EA580C 35.36%, #C2410C 70.71%)",
		TextColor:       "#FFFFFF",
		AccentColor:     "#FB923C",
		FontFamily:      "'Outfit', sans-serif",
	},
	domains.ThemeForest: {
		ID:              domains.ThemeForest,
		Name:            "Forest",
		PrimaryColor:    "#10B981",
		BackgroundColor: "linear-gradient(135deg, #10B981 0%, #059669 35.36%, #047857 70.71%)",
		TextColor:       "#ECFDF5",
		AccentColor:     "#34D399",
		FontFamily:      "'Space Grotesk', sans-serif",
	},
	domains.ThemeLavender: {
		ID:              domains.ThemeLavender,
		Name:            "Lavender",
		PrimaryColor:    "#A855F7",
		BackgroundColor: "linear-gradient(135deg, #A855F7 0%, #9333EA 35.36%, #7E22CE 70.71%)",
		TextColor:       "#FFFFFF",
		AccentColor:     "#C084FC",
		FontFamily:      "'Sora', sans-serif",
	},
	domains.ThemeMinimal: {
		ID:              domains.ThemeMinimal,
		Name:            "Minimal",
		PrimaryColor:    "#3B82F6",
		BackgroundColor: "linear-gradient(135deg, #3B82F6 0%, #2563EB 35.36%, #1E3A8A 70.71%)",
		TextColor:       "#FFFFFF",
		AccentColor:     "#60A5FA",
		FontFamily:      "'Inter', sans-serif",
	},
}

var presetOrder = []domains.ThemePreset{
	domains.ThemeMidnight,
	domains.ThemeOcean,
	domains.ThemeSunset,
	domains.ThemeForest,
	domains.ThemeLavender,
	domains.ThemeMinimal,
}

// Get returns the config for a preset, falling back to minimal for unknown
// preset names so a stale theme never breaks rendering.
func Get(preset domains.ThemePreset) Config {
	if cfg, ok := registry[preset]; ok {
		return cfg
	}
	return registry[domains.ThemeMinimal]
}

// Known reports whether the preset exists in the registry.
func Known(preset domains.ThemePreset) bool {
	_, ok := registry[preset]
	return ok
}

// List returns all presets in display order.
func List() []Config {
	out := make([]Config, 0, len(presetOrder))
	for _, p := range presetOrder {
		out = append(out, registry[p])
	}
	return out
}

// GradientFromColor builds the standard 3-stop gradient from a single hex
// color by darkening it twice.
func GradientFromColor(hex string) string {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return ""
	}
	r, errR := strconv.ParseInt(hex[0:2], 16, 32)
	g, errG := strconv.ParseInt(hex[2:4], 16, 32)
	b, errB := strconv.ParseInt(hex[4:6], 16, 32)
	if errR != nil || errG != nil || errB != nil {
		return ""
	}

	darken := func(v int64, factor float64) int64 {
		d := int64(float64(v) * factor)
		if d < 0 {
			return 0
		}
		return d
	}

	c1 := fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
	c2 := fmt.Sprintf("rgb(%d, %d, %d)", darken(r, 0.85), darken(g, 0.85), darken(b, 0.85))
	c3 := fmt.Sprintf("rgb(%d, %d, %d)", darken(r, 0.6), darken(g, 0.6), darken(b, 0.6))
	return fmt.Sprintf("linear-gradient(135deg, %s 0%%, %s 35.36%%, %s 70.71%%)", c1, c2, c3)
}
