// Package icon renders the symbols prefixed to sync reports.
//
// Icons can be displayed as emoji, nerd-font glyphs or plain ASCII depending on user preference.
package icon

import (
	"github.com/anisan-cli/bgmsync/key"
	"github.com/spf13/viper"
)

const (
	emoji = "emoji"
	nerd  = "nerd"
	plain = "plain"
)

// AvailableVariants returns every supported icon style.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain}
}

// Icon identifies a registered symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Skip
	Progress
	Partial
)

type iconDef struct {
	emoji string
	nerd  string
	plain string
}

func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	default:
		return ""
	}
}

var icons = map[Icon]*iconDef{
	Success:  {emoji: "✅", nerd: "", plain: "[ok]"},
	Fail:     {emoji: "❌", nerd: "", plain: "[x]"},
	Skip:     {emoji: "⏭️", nerd: "", plain: "[-]"},
	Progress: {emoji: "⏳", nerd: "", plain: "..."},
	Partial:  {emoji: "⚠️", nerd: "", plain: "[!]"},
}

// Get returns the rendered symbol for the configured variant.
func Get(i Icon) string {
	def, ok := icons[i]
	if !ok {
		return ""
	}
	return def.Get()
}
