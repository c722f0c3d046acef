// # FlexCSV: A Configurable Streaming Codec for Delimited Text
//
// FlexCSV reads and writes CSV-family data with a configurable field separator, text delimiter and line delimiter. The parser is deliberately lenient: quote anomalies that strict RFC 4180 readers reject are absorbed as field data, so real-world messy files parse without babysitting.
//
// # Features
//
// - Streaming parser over any `io.Reader`: quoted fields spanning multiple physical lines, doubled-quote escaping, `\r\n`/`\n`/`\r` terminators, one row buffered at a time.
// - Optional header extraction, blank-line suppression and field-count validation (`Config.ContainsHeader`, `Config.SkipEmptyRows`, `Config.ErrorOnDifferentFieldCount`).
// - Buffered appender with selective or forced quoting (`Config.AlwaysDelimitText`) and explicit flush control.
// - `Read`/`ReadFile` collect a whole stream into a `Container`; `WriteFile`/`OpenAppender` cover the write side, all with charset support via `golang.org/x/text`.
// - Structured errors: `ErrNoData`, `ErrInvalidConfig` and `FieldCountError` carrying line, expected and actual counts.
// - `cmd/flexcsv` ships a small check/head/convert command line tool.
//
// # Getting Started
//
// The module path is `github.com/oleg578/flexcsv`. Start from `DefaultConfig()` (comma separated, double quoted, blank lines skipped) and hand it to `NewParser`, `NewAppender` or one of the file entry points; the zero `Config` is not a usable dialect.
package flexcsv
