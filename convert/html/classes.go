package html

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"

	"ptc/pptx"
)

// Style classification: each function maps one formatting attribute to the
// CSS class names to apply, registering the backing rule as a side effect.
// A missing or unresolvable attribute yields no classes and no rules.

const maxSlugLen = 40

// slugify produces a class name fragment from free-form text: non
// alphanumerics become hyphens, result is lowercased and capped.
func slugify(s string) string {
	out := slug.Make(s)
	if len(out) > maxSlugLen {
		out = strings.Trim(out[:maxSlugLen], "-")
	}
	return out
}

// resolveColor turns a parsed color into "#RRGGBB", consulting the theme
// for scheme references. Returns false when the color cannot be resolved.
func resolveColor(theme ThemeColors, c *pptx.Color) (string, bool) {
	switch {
	case c == nil:
		return "", false
	case c.Hex != "":
		return "#" + strings.ToUpper(c.Hex), true
	case c.Slot != "":
		return theme.Lookup(c.Slot)
	}
	return "", false
}

// backgroundClasses classifies a cell fill. For theme referenced fills both
// a semantic class (readable slot name, preferred) and a hex class
// (fallback) are produced, backed by identical declarations.
func backgroundClasses(reg *Registry, theme ThemeColors, c *pptx.Color) []string {
	hex, ok := resolveColor(theme, c)
	if !ok {
		return nil
	}

	decl := "background-color:" + hex
	hexClass := "bg-" + strings.TrimPrefix(hex, "#")

	var classes []string
	if c.Slot != "" {
		semantic := "bg-" + slugify(c.Slot)
		reg.Add("."+semantic, decl)
		classes = append(classes, semantic)
	}
	reg.Add("."+hexClass, decl)
	return append(classes, hexClass)
}

// textColorClass classifies a run color.
func textColorClass(reg *Registry, theme ThemeColors, c *pptx.Color) []string {
	hex, ok := resolveColor(theme, c)
	if !ok {
		return nil
	}
	class := "text-" + strings.TrimPrefix(hex, "#")
	reg.Add("."+class, "color:"+hex)
	return []string{class}
}

// fontClasses classifies typeface and size of a run.
func fontClasses(reg *Registry, font string, size float64) []string {
	var classes []string
	if font != "" {
		if s := slugify(font); s != "" {
			class := "ff-" + s
			reg.Add("."+class, fmt.Sprintf("font-family:'%s'", font))
			classes = append(classes, class)
		}
	}
	if size > 0 {
		pt := int(size) // truncate to whole points
		class := fmt.Sprintf("fs-%d", pt)
		reg.Add("."+class, fmt.Sprintf("font-size:%dpt", pt))
		classes = append(classes, class)
	}
	return classes
}

// alignClass classifies paragraph alignment. Classification is total:
// anything but an explicit center or right token is left.
func alignClass(reg *Registry, algn string) string {
	var name string
	switch algn {
	case "ctr":
		name = "align-center"
	case "r":
		name = "align-right"
	default:
		name = "align-left"
	}
	reg.Add("."+name, "text-align:"+strings.TrimPrefix(name, "align-"))
	return name
}
