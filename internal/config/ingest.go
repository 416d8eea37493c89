package config

import "solidity-lsp/internal/tracelog"

// Ingest applies the recognized keys from raw (either an
// initializationOptions object or a didChangeConfiguration settings object)
// onto settings, exactly as spec §4.8 tabulates. Unknown keys are ignored
// silently. Each field is only replaced when the incoming value parses
// successfully; on failure the current value is kept (or, for
// revertStrings, reset to the default — spec §4.8: "Parses enum; default on
// failure").
func Ingest(settings *Settings, raw map[string]interface{}, log *tracelog.Logger) {
	if raw == nil {
		return
	}

	if v, ok := raw["evm"].(string); ok {
		if parsed, ok := parseEVMVersion(v); ok {
			settings.EVMVersion = parsed
		} else if log != nil {
			log.Warn("ignoring unrecognized evm version %q", v)
		}
	}

	if v, ok := raw["revertStrings"].(string); ok {
		if parsed, ok := parseRevertStrings(v); ok {
			settings.RevertStrings = parsed
		} else {
			settings.RevertStrings = RevertStringsDefault
		}
	}

	if arr, ok := raw["remapping"].([]interface{}); ok {
		for _, item := range arr {
			s, ok := item.(string)
			if !ok {
				continue
			}
			if remapping, ok := ParseRemapping(s); ok {
				// Appends rather than replaces: repeated configuration
				// changes accumulate remappings. This mirrors the observed
				// original behavior; see DESIGN.md's Open Questions entry
				// for why this repo did not change it to replace semantics.
				settings.Remappings = append(settings.Remappings, remapping)
			} else if log != nil {
				log.Warn("failed to parse remapping: %q", s)
			}
		}
	}

	if v, ok := raw["model-checker-contracts"].(string); ok {
		settings.ModelChecker.Contracts = v
	}
	if v, ok := raw["model-checker-engine"].(string); ok {
		settings.ModelChecker.Engine = v
	}
	if v, ok := raw["model-checker-targets"].(string); ok {
		settings.ModelChecker.Targets = v
	}
	// The original core read this value from the "model-checker-targets"
	// key instead of "model-checker-timeout" (spec §9: a cut-and-paste bug).
	// This repo reads the correctly named key.
	if v, ok := numberValue(raw["model-checker-timeout"]); ok {
		settings.ModelChecker.TimeoutMS = v
	}
}

// numberValue accepts both float64 (the shape encoding/json produces for
// JSON numbers) and uint64/int, since callers may build raw maps by hand in
// tests.
func numberValue(v interface{}) (uint64, bool) {
	switch n := v.(type) {
	case float64:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case uint64:
		return n, true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	default:
		return 0, false
	}
}
