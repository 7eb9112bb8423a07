// Package icon renders the status symbols printed next to series and episodes.
//
// Icons can be displayed as emoji, nerd-font glyphs or plain ASCII depending on user preference.
package icon

import "sync/atomic"

// Variant names accepted by the icons setting.
const (
	emoji = "emoji"
	nerd  = "nerd"
	plain = "plain"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain}
}

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Skip
	Cancel
	DryRun
)

// iconDef holds the representations of a single symbol across all variants.
type iconDef struct {
	emoji string
	nerd  string
	plain string
}

var icons = map[Icon]*iconDef{
	Success: {emoji: "✅", nerd: "", plain: "ok"},
	Fail:    {emoji: "❌", nerd: "", plain: "fail"},
	Skip:    {emoji: "⏭️", nerd: "", plain: "skip"},
	Cancel:  {emoji: "🛑", nerd: "", plain: "stop"},
	DryRun:  {emoji: "🧪", nerd: "", plain: "dry"},
}

var variant atomic.Value

func init() {
	variant.Store(plain)
}

// SetVariant selects the variant used by Get. Unknown names render every icon as an empty string.
func SetVariant(name string) {
	variant.Store(name)
}

// Variant returns the active variant name.
func Variant() string {
	return variant.Load().(string)
}

// Get retrieves the visual representation for the receiver based on the active variant.
func (d *iconDef) Get() string {
	switch Variant() {
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

// Get returns the rendered string for a specified Icon identifier from the registry.
func Get(i Icon) string {
	def, ok := icons[i]
	if !ok {
		return ""
	}
	return def.Get()
}
