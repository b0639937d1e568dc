package html

import (
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// ThemeColors maps normalized color slot names to "#RRGGBB" values. Built
// once per conversion and never mutated afterwards.
type ThemeColors map[string]string

// defaultThemeColors is the fallback palette matching the stock Office
// theme. Every slot a document fails to define resolves here.
var defaultThemeColors = map[string]string{
	"ACCENT1":     "#4472C4",
	"ACCENT2":     "#ED7D31",
	"ACCENT3":     "#A5A5A5",
	"ACCENT4":     "#FFC000",
	"ACCENT5":     "#5B9BD5",
	"ACCENT6":     "#70AD47",
	"TEXT1":       "#000000",
	"TEXT2":       "#FFFFFF",
	"BACKGROUND1": "#FFFFFF",
	"BACKGROUND2": "#000000",
	"HYPERLINK":   "#0563C1",
	"FOLLOWEDHYPERLINK": "#954F72",
}

// slotAliases folds DrawingML scheme names into the canonical slot set.
// Theme parts define dk/lt slots while slide color references use tx/bg,
// both mean the same palette entries.
var slotAliases = map[string]string{
	"DK1": "TEXT1",
	"DK2": "TEXT2",
	"LT1": "BACKGROUND1",
	"LT2": "BACKGROUND2",
	"TX1": "TEXT1",
	"TX2": "TEXT2",
	"BG1": "BACKGROUND1",
	"BG2": "BACKGROUND2",
	"HLINK":    "HYPERLINK",
	"FOLHLINK": "FOLLOWEDHYPERLINK",
}

// normalizeSlot converts any spelling of a slot name (accent1, ACCENT_1,
// tx2, dk2...) to its canonical form. Unknown names normalize to their
// uppercased underscore-free spelling so lookups stay total.
func normalizeSlot(name string) string {
	n := strings.ToUpper(strings.ReplaceAll(name, "_", ""))
	if canon, ok := slotAliases[n]; ok {
		return canon
	}
	return n
}

// Lookup resolves a slot name through normalization. The second result is
// false for slots the theme does not cover.
func (tc ThemeColors) Lookup(slot string) (string, bool) {
	hex, ok := tc[normalizeSlot(slot)]
	return hex, ok
}

// ResolveTheme builds the palette for one conversion from the raw theme
// part. Extracted values win over defaults, any failure along the way
// degrades to the default palette. Never fails.
func ResolveTheme(blob []byte, log *zap.Logger) ThemeColors {
	tc := make(ThemeColors, len(defaultThemeColors))

	if len(blob) > 0 {
		if err := extractSchemeColors(blob, tc); err != nil {
			log.Debug("Unable to extract theme color scheme, using defaults", zap.Error(err))
		}
	}

	for slot, hex := range defaultThemeColors {
		if _, ok := tc[slot]; !ok {
			tc[slot] = hex
		}
	}
	return tc
}

// Override replaces slot colors with user configured values. Slot names go
// through the usual normalization, colors must be "#RRGGBB" (leading '#'
// optional); anything else is skipped with a warning.
func (tc ThemeColors) Override(colors map[string]string, log *zap.Logger) {
	for slot, hex := range colors {
		h := strings.ToUpper(strings.TrimPrefix(hex, "#"))
		if !validHexColor(h) {
			log.Warn("Ignoring theme override with bad color value", zap.String("slot", slot), zap.String("color", hex))
			continue
		}
		tc[normalizeSlot(slot)] = "#" + h
	}
}

func validHexColor(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'A' || r > 'F') {
			return false
		}
	}
	return true
}

func extractSchemeColors(blob []byte, tc ThemeColors) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(blob); err != nil {
		return err
	}

	scheme := doc.FindElement("//clrScheme")
	if scheme == nil {
		return nil
	}

	for _, slot := range scheme.ChildElements() {
		// each child is a named slot (dk1, accent3...) holding either a
		// direct value or a system color with its last rendered value
		var hex string
		if srgb := slot.FindElement(".//srgbClr"); srgb != nil {
			hex = srgb.SelectAttrValue("val", "")
		} else if sys := slot.FindElement(".//sysClr"); sys != nil {
			hex = sys.SelectAttrValue("lastClr", "")
		}
		if len(hex) != 6 {
			continue
		}
		tc[normalizeSlot(slot.Tag)] = "#" + strings.ToUpper(hex)
	}
	return nil
}
