// Package diag defines the core diagnostic model shared by every phase: the
// lexer, the parser, the module loader, and the evaluator.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture
//     findings produced by each phase.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting or IO. Rendering
// responsibilities live in internal/diagfmt.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with a stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//
// Notes should be used sparingly: each note must add new context (e.g.
// "function declared here") rather than repeating the diagnostic message.
//
// # Emitting diagnostics
//
// Phases should use a diag.Reporter to decouple emission from storage. A
// ReportBuilder (NewReportBuilder, or the helpers ReportError/ReportWarning)
// chains WithNote before calling Emit; the parser itself calls
// Reporter.Report(...) directly.
//
// For convenience, diag.BagReporter aggregates diagnostics into a Bag, which
// stores them in insertion order up to its limit and can sort them;
// deduplication is done by DedupReporter before diagnostics reach a Bag.
// spec.md §8 requires "same inputs ⇒ identical diagnostics in the same
// order" — Bag.Sort gives that ordering, keyed on file, span, severity, code.
package diag
