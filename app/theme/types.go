// Package theme resolves reading preferences into the color and typography
// tokens used by the document stylesheet.
package theme

const (
	Light = "light"
	Dark  = "dark"
	Sepia = "sepia"
)

const (
	MinFontSize = 8
	MaxFontSize = 48
)

// Tokens are resolved once per render and are read-only afterwards.
type Tokens struct {
	TextColor       string `json:"text_color"`
	MutedColor      string `json:"muted_color"`
	LightColor      string `json:"light_color"`
	ExtraLightColor string `json:"extra_light_color"`
	DisabledColor   string `json:"disabled_color"`
	LinkColor       string `json:"link_color"`
	FontFamily      string `json:"font_family"`
	FontSize        int    `json:"font_size"`
}

// Preferences are the caller's reading preferences. Zero fields fall back to
// the registry defaults.
type Preferences struct {
	Theme      string `json:"theme"`
	FontFamily string `json:"font_family"`
	FontSize   int    `json:"font_size"`
}

type Palette struct {
	Text       string `yaml:"text"`
	Muted      string `yaml:"muted"`
	Light      string `yaml:"light"`
	ExtraLight string `yaml:"extra_light"`
	Disabled   string `yaml:"disabled"`
	Link       string `yaml:"link"`
}

type registryFile struct {
	Themes map[string]Palette `yaml:"themes"`
}
