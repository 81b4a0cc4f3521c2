package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRegistryResolveBuiltins(t *testing.T) {
	registry := NewRegistry(Light, "serif", 16)

	for _, name := range []string{Light, Dark, Sepia} {
		tokens := registry.Resolve(Preferences{Theme: name})
		palette := builtinPalettes[name]
		if tokens.TextColor != palette.Text {
			t.Errorf("%s: expected text color %s, got %s", name, palette.Text, tokens.TextColor)
		}
		if tokens.LinkColor != palette.Link {
			t.Errorf("%s: expected link color %s, got %s", name, palette.Link, tokens.LinkColor)
		}
	}
}

func TestRegistryResolveDefaults(t *testing.T) {
	registry := NewRegistry(Dark, "Noto Serif", 18)

	tokens := registry.Resolve(Preferences{})
	if tokens.TextColor != builtinPalettes[Dark].Text {
		t.Errorf("Expected default dark text color, got %s", tokens.TextColor)
	}
	if tokens.FontFamily != "Noto Serif" {
		t.Errorf("Expected font family 'Noto Serif', got '%s'", tokens.FontFamily)
	}
	if tokens.FontSize != 18 {
		t.Errorf("Expected font size 18, got %d", tokens.FontSize)
	}

	tokens = registry.Resolve(Preferences{Theme: "unknown"})
	if tokens.TextColor != builtinPalettes[Dark].Text {
		t.Errorf("Expected unknown theme to fall back to dark, got %s", tokens.TextColor)
	}
}

func TestRegistryResolveFonts(t *testing.T) {
	registry := NewRegistry(Light, "serif", 16)

	tests := []struct {
		prefs      Preferences
		fontFamily string
		fontSize   int
	}{
		{Preferences{FontFamily: "sans-serif", FontSize: 20}, "sans-serif", 20},
		{Preferences{FontSize: 2}, "serif", MinFontSize},
		{Preferences{FontSize: 200}, "serif", MaxFontSize},
		{Preferences{FontFamily: "x; } body { color: red"}, "serif", 16},
	}

	for _, tt := range tests {
		tokens := registry.Resolve(tt.prefs)
		if tokens.FontFamily != tt.fontFamily {
			t.Errorf("Resolve(%+v).FontFamily = %q, want %q", tt.prefs, tokens.FontFamily, tt.fontFamily)
		}
		if tokens.FontSize != tt.fontSize {
			t.Errorf("Resolve(%+v).FontSize = %d, want %d", tt.prefs, tokens.FontSize, tt.fontSize)
		}
	}
}

func TestRegistryLoadFile(t *testing.T) {
	tempDir := t.TempDir()

	content := `
themes:
  solarized:
    text: "#073642"
    muted: "#586e75"
    light: "#93a1a1"
    extra_light: "#eee8d5"
    disabled: "#839496"
    link: "#268bd2"
  Light:
    text: "black"
    muted: "gray"
    light: "silver"
    extra_light: "rgb(240, 240, 240)"
    disabled: "#aaa"
    link: "blue"
`
	path := filepath.Join(tempDir, "themes.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	registry := NewRegistry(Light, "serif", 16)
	if err := registry.LoadFile(path); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	tokens := registry.Resolve(Preferences{Theme: "solarized"})
	if tokens.LinkColor != "#268bd2" {
		t.Errorf("Expected solarized link color, got %s", tokens.LinkColor)
	}

	tokens = registry.Resolve(Preferences{Theme: Light})
	if tokens.TextColor != "black" {
		t.Errorf("Expected overridden light text color 'black', got %s", tokens.TextColor)
	}

	themes := strings.Join(registry.Themes(), ",")
	if themes != "dark,light,sepia,solarized" {
		t.Errorf("Unexpected theme list: %s", themes)
	}
}

func TestRegistryLoadFileInvalid(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name    string
		content string
		errText string
	}{
		{
			name:    "missing color",
			content: "themes:\n  broken:\n    text: \"#000\"\n",
			errText: "color is required",
		},
		{
			name: "injected color",
			content: `themes:
  broken:
    text: "red; } body { display: none"
    muted: "#000"
    light: "#000"
    extra_light: "#000"
    disabled: "#000"
    link: "#000"
`,
			errText: "not a valid CSS color",
		},
		{
			name:    "malformed yaml",
			content: "themes: [",
			errText: "failed to parse YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tempDir, strings.ReplaceAll(tt.name, " ", "_")+".yml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			err := NewRegistry(Light, "serif", 16).LoadFile(path)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errText) {
				t.Errorf("Expected error containing %q, got %v", tt.errText, err)
			}
		})
	}
}

func TestRegistryLoadFileMissing(t *testing.T) {
	err := NewRegistry(Light, "serif", 16).LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
	if err == nil {
		t.Error("Expected error for missing file")
	}
}
