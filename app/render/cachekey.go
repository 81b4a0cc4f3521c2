package render

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/lysyi3m/reader-render/app/display"
	"github.com/lysyi3m/reader-render/app/theme"
)

// CacheKey identifies the document rendered from item with tokens on a
// display with metrics. Inputs that cannot be encoded, such as a NaN
// density, have no key.
func CacheKey(item ContentItem, tokens theme.Tokens, metrics display.Metrics) (string, error) {
	payload, err := json.Marshal(struct {
		Item    ContentItem     `json:"item"`
		Tokens  theme.Tokens    `json:"tokens"`
		Metrics display.Metrics `json:"metrics"`
	}{item, tokens, metrics})
	if err != nil {
		return "", fmt.Errorf("failed to encode cache key: %w", err)
	}

	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
