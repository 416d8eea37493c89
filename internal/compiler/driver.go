package compiler

import (
	"solidity-lsp/internal/ast"
	"solidity-lsp/internal/config"
	"solidity-lsp/internal/lsptype"
	"solidity-lsp/internal/pathutil"
	"solidity-lsp/internal/textutil"
	"solidity-lsp/internal/tracelog"
)

// Driver is the Compile Driver named in spec §4.3: it owns the frontend
// instance's lifecycle, and translates its diagnostics into the LSP wire
// shape for publishing.
type Driver struct {
	newFrontend func() Frontend
	frontend    Frontend
	log         *tracelog.Logger
}

// NewDriver builds a Driver around a Frontend factory. A factory, rather
// than a shared instance, is used because spec §4.3 step 2 requires a fresh
// frontend instance on every compile ("Reset compiler state: install a
// fresh frontend instance").
func NewDriver(newFrontend func() Frontend, log *tracelog.Logger) *Driver {
	return &Driver{newFrontend: newFrontend, log: log}
}

// Compile implements spec §4.3's compile(path) -> bool:
//  1. if path is not open in documents, return false.
//  2. install a fresh frontend instance, configured with settings.
//  3. run the frontend up to analysis (no error-recovery setting is passed;
//     see Frontend.CompileTo).
//  4. return true regardless of whether errors were produced.
func (d *Driver) Compile(path string, documents map[string]string, settings config.Settings) bool {
	if _, ok := documents[path]; !ok {
		if d.log != nil {
			d.log.Warn("compile requested for document not open: %s", path)
		}
		return false
	}

	d.frontend = d.newFrontend()
	d.frontend.Reset()
	d.frontend.Configure(settings)

	sources := make(map[string]string, len(documents))
	for k, v := range documents {
		sources[k] = v
	}
	d.frontend.SetSources(sources)

	if err := d.frontend.CompileTo(LevelAnalyzed); err != nil && d.log != nil {
		d.log.Debug("compile of %s finished with frontend error: %v", path, err)
	}
	return true
}

// AST returns the last compile's AST for path.
func (d *Driver) AST(path string) (*ast.Unit, bool) {
	if d.frontend == nil {
		return nil, false
	}
	return d.frontend.AST(path)
}

// Diagnostics returns the last compile's full diagnostic list.
func (d *Driver) Diagnostics() []Diagnostic {
	if d.frontend == nil {
		return nil
	}
	return d.frontend.Diagnostics()
}

// CompileSource implements spec §4.3's compileSource(path):
//  1. compile(path).
//  2. group the diagnostics that apply to path.
//  3. translate each to the wire Diagnostic shape (severity mapped 1:1,
//     errors and anything unrecognized mapped to Error).
//  4. wrap in a PublishDiagnosticsParams for path's URI.
func (d *Driver) CompileSource(path string, documents map[string]string, settings config.Settings, basePath string) *lsptype.PublishDiagnosticsParams {
	d.Compile(path, documents, settings)

	params := &lsptype.PublishDiagnosticsParams{
		URI:         pathutil.ToURI(pathutil.AbsolutePath(basePath, path)),
		Diagnostics: []lsptype.Diagnostic{},
	}

	for _, diag := range d.Diagnostics() {
		if diag.Location.Source == nil || diag.Location.Source.Path != path {
			continue
		}
		params.Diagnostics = append(params.Diagnostics, toWireDiagnostic(diag, basePath))
	}
	return params
}

func toWireDiagnostic(diag Diagnostic, basePath string) lsptype.Diagnostic {
	severity := lsptype.SeverityError
	if diag.Severity == SeverityWarning {
		severity = lsptype.SeverityWarning
	}

	wire := lsptype.Diagnostic{
		Range:    rangeOf(diag.Location),
		Severity: severity,
		Source:   lsptype.DiagnosticSource,
		Message:  diag.Message,
	}
	if diag.Code != nil {
		wire.Code = *diag.Code
	}
	for _, sec := range diag.Secondary {
		related := lsptype.DiagnosticRelatedInformation{Message: sec.Message}
		if sec.Location.Source != nil {
			related.Location = lsptype.Location{
				URI:   pathutil.ToURI(pathutil.AbsolutePath(basePath, sec.Location.Source.Path)),
				Range: rangeOf(sec.Location),
			}
		}
		wire.RelatedInformation = append(wire.RelatedInformation, related)
	}
	return wire
}

func rangeOf(loc ast.SourceLocation) lsptype.Range {
	if loc.Source == nil {
		return lsptype.Range{}
	}
	return lsptype.Range{
		Start: textutil.PositionOf(loc.Source.Text, loc.Start),
		End:   textutil.PositionOf(loc.Source.Text, loc.End),
	}
}
