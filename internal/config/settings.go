// Package config models the server's mutable settings (spec §3 "settings")
// and the configuration-ingestion routine shared by initializationOptions
// and workspace/didChangeConfiguration (spec §4.8), plus an optional
// on-disk YAML defaults file modeled on the teacher's src/config/config.go.
package config

import "fmt"

// RevertStringsMode mirrors solc's --revert-strings modes.
type RevertStringsMode string

const (
	RevertStringsDefault      RevertStringsMode = "default"
	RevertStringsStrip        RevertStringsMode = "strip"
	RevertStringsDebug        RevertStringsMode = "debug"
	RevertStringsVerboseDebug RevertStringsMode = "verboseDebug"
)

func parseRevertStrings(s string) (RevertStringsMode, bool) {
	switch RevertStringsMode(s) {
	case RevertStringsDefault, RevertStringsStrip, RevertStringsDebug, RevertStringsVerboseDebug:
		return RevertStringsMode(s), true
	default:
		return "", false
	}
}

// knownEVMVersions is the set of EVM hardfork names the "evm" configuration
// key accepts. Kept as a fixed table (rather than delegating to a real
// compiler) since validating the name is the only thing the core itself
// needs to do with it before handing it to the Frontend.
var knownEVMVersions = map[string]bool{
	"homestead": true, "tangerineWhistle": true, "spuriousDragon": true,
	"byzantium": true, "constantinople": true, "petersburg": true,
	"istanbul": true, "berlin": true, "london": true, "paris": true,
	"shanghai": true, "cancun": true,
}

func parseEVMVersion(s string) (string, bool) {
	if knownEVMVersions[s] {
		return s, true
	}
	return "", false
}

// ModelCheckerSettings mirrors the subset of solc's SMTChecker configuration
// surfaced through LSP configuration keys.
type ModelCheckerSettings struct {
	Contracts string
	Engine    string
	Targets   string
	TimeoutMS uint64
}

// Remapping is one import-remapping rule: an optional context, the import
// prefix it applies to, and the target it rewrites to.
type Remapping struct {
	Context string
	Prefix  string
	Target  string
}

// ParseRemapping parses solc's `[context:]prefix=target` remapping syntax.
func ParseRemapping(s string) (Remapping, bool) {
	eq := indexByte(s, '=')
	if eq < 0 {
		return Remapping{}, false
	}
	left, target := s[:eq], s[eq+1:]
	if target == "" {
		return Remapping{}, false
	}
	if colon := indexByte(left, ':'); colon >= 0 {
		return Remapping{Context: left[:colon], Prefix: left[colon+1:], Target: target}, true
	}
	return Remapping{Prefix: left, Target: target}, true
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

func (r Remapping) String() string {
	if r.Context != "" {
		return fmt.Sprintf("%s:%s=%s", r.Context, r.Prefix, r.Target)
	}
	return fmt.Sprintf("%s=%s", r.Prefix, r.Target)
}

// Settings is the server's mutable configuration state (spec §3).
type Settings struct {
	EVMVersion    string
	RevertStrings RevertStringsMode
	ModelChecker  ModelCheckerSettings
	Remappings    []Remapping
}

// Default returns the settings the server starts with before any
// initializationOptions or on-disk defaults are ingested.
func Default() Settings {
	return Settings{
		EVMVersion:    "shanghai",
		RevertStrings: RevertStringsDefault,
		ModelChecker: ModelCheckerSettings{
			Engine: "none",
		},
	}
}
