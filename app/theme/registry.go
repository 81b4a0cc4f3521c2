package theme

import (
	"cmp"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

var builtinPalettes = map[string]Palette{
	Light: {
		Text:       "#1d2327",
		Muted:      "#50575e",
		Light:      "#8c8f94",
		ExtraLight: "#dcdcde",
		Disabled:   "#a7aaad",
		Link:       "#2271b1",
	},
	Dark: {
		Text:       "#f0f0f1",
		Muted:      "#c3c4c7",
		Light:      "#8c8f94",
		ExtraLight: "#2c3338",
		Disabled:   "#646970",
		Link:       "#72aee6",
	},
	Sepia: {
		Text:       "#3e2f22",
		Muted:      "#5f4b3a",
		Light:      "#8a7560",
		ExtraLight: "#e8dcc4",
		Disabled:   "#a8957e",
		Link:       "#8a4b08",
	},
}

var (
	reColor      = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]+|(rgb|rgba|hsl|hsla)\([0-9.,%\s]+\))$`)
	reFontFamily = regexp.MustCompile(`^[a-zA-Z0-9 ,'"-]+$`)
)

type Registry struct {
	palettes     map[string]Palette
	defaultTheme string
	fontFamily   string
	fontSize     int
	mu           sync.RWMutex
}

func NewRegistry(defaultTheme, fontFamily string, fontSize int) *Registry {
	palettes := make(map[string]Palette, len(builtinPalettes))
	for name, palette := range builtinPalettes {
		palettes[name] = palette
	}

	return &Registry{
		palettes:     palettes,
		defaultTheme: cmp.Or(defaultTheme, Light),
		fontFamily:   cmp.Or(fontFamily, "serif"),
		fontSize:     clampFontSize(fontSize),
	}
}

// LoadFile merges the palettes of a YAML theme file into the registry.
// Palettes with the same name as a built-in replace it.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	for name, palette := range file.Themes {
		if err := validatePalette(palette); err != nil {
			return fmt.Errorf("invalid theme %s: %w", name, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for name, palette := range file.Themes {
		r.palettes[strings.ToLower(name)] = palette
		slog.Debug("Theme loaded", "theme", name, "file", path)
	}

	return nil
}

// Resolve turns preferences into tokens. Unknown themes resolve to the
// default theme.
func (r *Registry) Resolve(prefs Preferences) Tokens {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name := strings.ToLower(cmp.Or(prefs.Theme, r.defaultTheme))
	palette, ok := r.palettes[name]
	if !ok {
		slog.Debug("Unknown theme, using default", "theme", prefs.Theme, "default", r.defaultTheme)
		palette, ok = r.palettes[r.defaultTheme]
		if !ok {
			palette = builtinPalettes[Light]
		}
	}

	fontFamily := r.fontFamily
	if prefs.FontFamily != "" && reFontFamily.MatchString(prefs.FontFamily) {
		fontFamily = prefs.FontFamily
	}

	fontSize := r.fontSize
	if prefs.FontSize != 0 {
		fontSize = clampFontSize(prefs.FontSize)
	}

	return Tokens{
		TextColor:       palette.Text,
		MutedColor:      palette.Muted,
		LightColor:      palette.Light,
		ExtraLightColor: palette.ExtraLight,
		DisabledColor:   palette.Disabled,
		LinkColor:       palette.Link,
		FontFamily:      fontFamily,
		FontSize:        fontSize,
	}
}

func (r *Registry) Themes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.palettes))
	for name := range r.palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func validatePalette(palette Palette) error {
	colors := map[string]string{
		"text":        palette.Text,
		"muted":       palette.Muted,
		"light":       palette.Light,
		"extra_light": palette.ExtraLight,
		"disabled":    palette.Disabled,
		"link":        palette.Link,
	}

	for fieldName, value := range colors {
		if value == "" {
			return fmt.Errorf("%s color is required", fieldName)
		}
		if !reColor.MatchString(value) {
			return fmt.Errorf("%s color is not a valid CSS color: %s", fieldName, value)
		}
	}

	return nil
}

func clampFontSize(size int) int {
	if size <= 0 {
		return 16
	}
	return min(max(size, MinFontSize), MaxFontSize)
}
