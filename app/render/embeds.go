package render

import (
	"strings"

	"github.com/lysyi3m/reader-render/app/markup"
)

const (
	InstagramScriptURL = "https://platform.instagram.com/en_US/embeds.js"
	FacebookScriptURL  = "https://connect.facebook.net/en_US/sdk.js#xfbml=1&version=v2.8"
	TwitterScriptURL   = "https://platform.twitter.com/widgets.js"
)

// EmbedFamilies are the third-party embed signatures that need a support
// script. Order determines script order in the document.
var EmbedFamilies = []markup.Family{
	{
		Name:    "instagram",
		Element: "blockquote",
		URL:     InstagramScriptURL,
		Accept: func(attrs markup.Attrs) bool {
			return strings.HasPrefix(attrs["class"], "instagram-")
		},
	},
	{
		Name:    "facebook",
		Element: "fb:post",
		URL:     FacebookScriptURL,
	},
	{
		Name:    "twitter",
		Element: "blockquote",
		URL:     TwitterScriptURL,
		Accept: func(attrs markup.Attrs) bool {
			return attrs.HasClass("twitter-tweet")
		},
	},
}

// EmbedScripts returns the support scripts needed by content, without
// duplicates.
func EmbedScripts(content string) []string {
	scripts := make([]string, 0, len(EmbedFamilies))
	seen := make(map[string]bool)

	for _, family := range EmbedFamilies {
		if seen[family.URL] || !markup.Contains(content, family) {
			continue
		}
		seen[family.URL] = true
		scripts = append(scripts, family.URL)
	}

	return scripts
}
