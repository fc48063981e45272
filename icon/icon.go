// Package icon provides a multi-variant rendering engine for CLI symbols and feedback indicators.
//
// Icons can be displayed as emoji, nerd-font glyphs or plain ASCII depending on user preference.
package icon

import (
	"github.com/sapphirebluet/Movix/key"
	"github.com/spf13/viper"
)

// Visual Variant Constants - these define the supported aesthetic styles for icon rendering.
const (
	emoji = "emoji"
	nerd  = "nerd"
	plain = "plain"
)

// Icon identifies a semantic symbol rendered per the configured variant.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Play
)

var variants = map[string]map[Icon]string{
	emoji: {
		Success:  "✅",
		Fail:     "❌",
		Progress: "⏳",
		Play:     "▶️",
	},
	nerd: {
		Success:  "",
		Fail:     "",
		Progress: "",
		Play:     "",
	},
	plain: {
		Success:  "+",
		Fail:     "x",
		Progress: "...",
		Play:     ">",
	},
}

// AvailableVariants returns the identifiers of every supported icon variant.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain}
}

// Get renders the requested icon using the configured variant, falling back to plain.
func Get(i Icon) string {
	variant := viper.GetString(key.IconsVariant)
	set, ok := variants[variant]
	if !ok {
		set = variants[plain]
	}
	return set[i]
}
