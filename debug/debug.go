// Package debug provides env-var gated debug switches for the
// composition passes.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Load    bool
	Rewrite bool
	Roles   bool
	Expand  bool
	Inject  bool
	Meta    bool
}

var d *debug

func init() {
	d = &debug{}
	d.Load = boolEnv("SC_DEBUG_LOAD")
	d.Rewrite = boolEnv("SC_DEBUG_REWRITE")
	d.Roles = boolEnv("SC_DEBUG_ROLES")
	d.Expand = boolEnv("SC_DEBUG_EXPAND")
	d.Inject = boolEnv("SC_DEBUG_INJECT")
	d.Meta = boolEnv("SC_DEBUG_META")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Load() bool    { return d.Load }
func Rewrite() bool { return d.Rewrite }
func Roles() bool   { return d.Roles }
func Expand() bool  { return d.Expand }
func Inject() bool  { return d.Inject }
func Meta() bool    { return d.Meta }
