package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus anything a user
// should fix before the engine will (or should) run.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	// drop blanks and duplicates, keep declared order
	seen := map[string]bool{}
	var paths []string
	for _, p := range out.Catalog.Paths {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		paths = append(paths, p)
	}
	out.Catalog.Paths = paths

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	if len(out.Catalog.Paths) == 0 {
		res.addErr("catalog.paths must list at least one catalog file")
	}
	if len(out.Catalog.Paths) > 20 {
		res.addWarn("catalog.paths has %d entries; startup loads all of them.", len(out.Catalog.Paths))
	}

	return out, res
}
