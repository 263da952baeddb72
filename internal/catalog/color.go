package catalog

import "github.com/fatih/color"

var palette = map[string]color.Attribute{
	"black":   color.FgBlack,
	"red":     color.FgRed,
	"green":   color.FgGreen,
	"yellow":  color.FgYellow,
	"blue":    color.FgBlue,
	"magenta": color.FgMagenta,
	"cyan":    color.FgCyan,
	"white":   color.FgWhite,
}

// Paint renders text in the named catalog colour. Unknown or empty colour
// names leave text unchanged.
func Paint(name, text string) string {
	attr, ok := palette[name]
	if !ok {
		return text
	}
	return color.New(attr).Sprint(text)
}
