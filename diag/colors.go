package diag

import (
	"strings"

	"github.com/fatih/color"
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Severity]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Severity]func(string, ...any) string{},
	}
	colors.Map[Progress] = color.CyanString
	colors.Map[Warning] = color.YellowString
	colors.Map[Error] = color.RedString
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func NoColors() *Colors {
	return &Colors{Default: colorDefault}
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Get(s Severity) func(string, ...any) string {
	f := c.Map[s]
	if f == nil {
		return c.Default
	}
	return f
}
