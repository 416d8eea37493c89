// Package compiler wraps the out-of-scope "compiler frontend" collaborator
// named in spec §1 behind the Frontend interface (reset, configure,
// set_sources, compile_to) and provides the Compile Driver (spec §4.3) that
// depends on it.
package compiler

import (
	"solidity-lsp/internal/ast"
	"solidity-lsp/internal/config"
)

// AnalysisLevel names how far CompileTo should run the frontend, matching
// spec §1's "compile_to(analysis_level)" operation. This server only ever
// requests LevelAnalyzed (spec §4.3 step 3: "Run compilation up to and
// including analysis (no code generation)"), but the interface still names
// the parameter so a real frontend can honor a narrower request.
type AnalysisLevel int

const (
	LevelParsed AnalysisLevel = iota
	LevelAnalyzed
)

// Severity mirrors the compiler's own error/warning distinction, translated
// to LSP's 1..4 scale by the Driver (spec §4.3: "mapped by type -> severity
// (errors of any kind -> 1; warnings -> 2; unknown -> 1)").
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// SecondaryReference is one entry of a Diagnostic's related-information list.
type SecondaryReference struct {
	Location ast.SourceLocation
	Message  string
}

// Diagnostic is a single compiler finding, prior to translation into the
// LSP wire shape (that translation is the Driver's job, spec §4.3).
type Diagnostic struct {
	Severity  Severity
	Message   string
	Location  ast.SourceLocation
	Code      *uint64
	Secondary []SecondaryReference
}

// Frontend is the out-of-scope compiler frontend collaborator (spec §1):
// "consumes a set of source files plus compile settings; produces a typed
// AST and a diagnostic list." Any implementation — this package's
// reference lexer/parser, or a real solc-equivalent bridge — plugs into
// Driver unchanged.
type Frontend interface {
	// Reset discards any state from a previous compile.
	Reset()
	// Configure installs the settings (EVM version, revert-strings mode,
	// model-checker options, import remappings) for the next CompileTo.
	Configure(settings config.Settings)
	// SetSources installs the full set of source files for the next
	// CompileTo. The frontend must treat this map as a snapshot: later
	// mutation of the caller's map must not affect the frontend.
	SetSources(sources map[string]string)
	// CompileTo runs the frontend up to and including level. The interface
	// carries no error-recovery setting; the reference frontend's parser
	// (internal/compiler/refimpl) resynchronizes after a syntax error and
	// keeps parsing the rest of the file.
	CompileTo(level AnalysisLevel) error
	// AST returns the compiled unit for path, or ok=false if path has no
	// AST (parse failed before producing one, or path is unknown).
	AST(path string) (*ast.Unit, bool)
	// Diagnostics returns every diagnostic produced by the last CompileTo.
	Diagnostics() []Diagnostic
}
