// Package lsptype re-exports the subset of go.lsp.dev/protocol's wire types
// this server actually produces on the response side: positions, ranges,
// locations and diagnostics. Inbound request parameters are deliberately
// NOT parsed through protocol's typed params structs — see
// rpc.Message.ParamsMap in internal/rpc/message.go — so that the server's request-handling path stays
// independent of the exact shape of client-supplied JSON, matching the
// teacher's own "untyped map parameters" fallback path in
// server/documents/manager.go.
package lsptype

import "go.lsp.dev/protocol"

type (
	// Position is a zero-based line/character (UTF-16 code unit) pair.
	Position = protocol.Position
	// Range is a start/end Position pair.
	Range = protocol.Range
	// Location pairs a document URI with a Range within it.
	Location = protocol.Location
	// Diagnostic is a compiler finding attached to a source range.
	Diagnostic = protocol.Diagnostic
	// DiagnosticRelatedInformation cross-references a secondary location.
	DiagnosticRelatedInformation = protocol.DiagnosticRelatedInformation
	// DiagnosticSeverity is the 1..4 severity scale LSP defines.
	DiagnosticSeverity = protocol.DiagnosticSeverity
	// PublishDiagnosticsParams is the payload of textDocument/publishDiagnostics.
	PublishDiagnosticsParams = protocol.PublishDiagnosticsParams
	// Hover is the result of textDocument/hover.
	Hover = protocol.Hover
	// MarkupContent carries hover/documentation text plus its format.
	MarkupContent = protocol.MarkupContent
	// MarkupKind selects plaintext or markdown rendering.
	MarkupKind = protocol.MarkupKind
	// DocumentHighlight is one textDocument/documentHighlight result entry.
	DocumentHighlight = protocol.DocumentHighlight
	// DocumentHighlightKind classifies a highlight as text/read/write.
	DocumentHighlightKind = protocol.DocumentHighlightKind
	// DocumentURI is the string-based URI type LSP uses on the wire.
	DocumentURI = protocol.DocumentURI
)

// Severity levels as defined by the LSP specification (1=Error .. 4=Hint).
// Built from integer literals rather than named protocol constants because
// the numeric values, unlike identifier spellings, are part of the wire
// protocol itself and cannot drift between library versions.
const (
	SeverityError       DiagnosticSeverity = 1
	SeverityWarning     DiagnosticSeverity = 2
	SeverityInformation DiagnosticSeverity = 3
	SeverityHint        DiagnosticSeverity = 4
)

// DocumentHighlightKind values as defined by the LSP specification.
const (
	HighlightText  DocumentHighlightKind = 1
	HighlightRead  DocumentHighlightKind = 2
	HighlightWrite DocumentHighlightKind = 3
)

// MarkupKind values as defined by the LSP specification.
const (
	MarkupPlainText MarkupKind = "plaintext"
	MarkupMarkdown  MarkupKind = "markdown"
)

// DiagnosticSource is the constant "source" field spec §3 requires on every
// diagnostic. Kept "solc-like" verbatim as spec.md's Diagnostic definition
// names it, since the wire contract is what IDE clients pattern-match on.
const DiagnosticSource = "solc-like"
