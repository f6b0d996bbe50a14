// Package deps checks for the external programs an item source needs.
package deps

import (
	"os/exec"
	"runtime"
)

type Dependency struct {
	Name       string
	Command    string
	InstallCmd map[string]string
}

type MissingDep struct {
	Dependency
}

var known = map[string]Dependency{
	"sh": {
		Name:    "sh",
		Command: "sh",
		InstallCmd: map[string]string{
			"darwin": "xcode-select --install",
			"linux":  "sudo apt install dash",
		},
	},
}

var lookPath = exec.LookPath

// Check reports which of commands cannot be found on PATH.
func Check(commands ...string) []MissingDep {
	missing := []MissingDep{}
	for _, c := range commands {
		dep, ok := known[c]
		if !ok {
			dep = Dependency{Name: c, Command: c}
		}
		if _, err := lookPath(dep.Command); err != nil {
			missing = append(missing, MissingDep{dep})
		}
	}
	return missing
}

func InstallHint(dep MissingDep) string {
	goos := runtime.GOOS
	if cmd, ok := dep.InstallCmd[goos]; ok {
		return cmd
	}
	return "install " + dep.Name + " via your package manager"
}
