// Package dialect provides SQL dialect configuration: identifier quoting,
// placeholder formatting, reserved words, and table-prefix rules.
//
// This package contains the public contract the statement builder renders
// against. Concrete dialect definitions are registered from pkg/dialects/*/
// packages; database adapters in pkg/adapters/*/ reference them by name.
package dialect

import (
	"strconv"
	"strings"
)

// NormalizationStrategy defines how unquoted identifiers are normalized.
type NormalizationStrategy int

const (
	// NormLowercase normalizes unquoted identifiers to lowercase (default SQL behavior).
	NormLowercase NormalizationStrategy = iota
	// NormUppercase normalizes unquoted identifiers to uppercase (Snowflake, Oracle).
	NormUppercase
	// NormCaseSensitive preserves identifier case exactly (MySQL, ClickHouse).
	NormCaseSensitive
	// NormCaseInsensitive normalizes to lowercase for comparison (BigQuery, DuckDB).
	NormCaseInsensitive
)

// PlaceholderStyle defines how query parameters are formatted.
type PlaceholderStyle int

const (
	// PlaceholderQuestion uses ? for all parameters (MySQL, SQLite, DuckDB).
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar uses $1, $2, etc. (PostgreSQL).
	PlaceholderDollar
)

// IdentifierConfig defines how identifiers are quoted and normalized.
type IdentifierConfig struct {
	Quote         string                // Quote character: ", `, [
	QuoteEnd      string                // End quote character (usually same as Quote, ] for [)
	Escape        string                // Escape sequence: "", ``, ]]
	Normalization NormalizationStrategy // How to normalize unquoted identifiers
}

// Dialect represents a SQL dialect configuration.
type Dialect struct {
	Name        string
	Identifiers IdentifierConfig

	// Database-specific settings
	DefaultSchema string           // Default schema name ("public" for Postgres, "main" for DuckDB)
	Placeholder   PlaceholderStyle // How to format query parameters

	// Words that need quoting when used as identifiers
	reservedWords map[string]struct{}
}

// GetName returns the dialect name.
func (d *Dialect) GetName() string { return d.Name }

// NormalizeName normalizes an identifier according to dialect rules.
func (d *Dialect) NormalizeName(name string) string {
	switch d.Identifiers.Normalization {
	case NormUppercase:
		return strings.ToUpper(name)
	case NormLowercase, NormCaseInsensitive:
		return strings.ToLower(name)
	default: // NormCaseSensitive
		return name
	}
}

// FormatPlaceholder returns a placeholder for the given parameter index (1-based).
// Returns "?" for PlaceholderQuestion style, "$1", "$2" etc. for PlaceholderDollar.
func (d *Dialect) FormatPlaceholder(index int) string {
	switch d.Placeholder {
	case PlaceholderDollar:
		return "$" + strconv.Itoa(index)
	default: // PlaceholderQuestion
		return "?"
	}
}

// IsReservedWord returns true if the word needs quoting when used unescaped.
func (d *Dialect) IsReservedWord(word string) bool {
	_, ok := d.reservedWords[d.NormalizeName(word)]
	return ok
}

// QuoteIdentifier quotes a single identifier token using the dialect's quote
// characters. A lone * is passed through unquoted.
func (d *Dialect) QuoteIdentifier(name string) string {
	if name == "*" {
		return name
	}
	// Escape any existing quote end characters in the name (e.g., ] -> ]])
	escaped := strings.ReplaceAll(name, d.Identifiers.QuoteEnd, d.Identifiers.Escape)
	return d.Identifiers.Quote + escaped + d.Identifiers.QuoteEnd
}

// QuoteColumn quotes a possibly dotted column reference: "users.id" becomes
// "users"."id", a bare "id" becomes "id" quoted, and "t.*" keeps the star.
func (d *Dialect) QuoteColumn(name string) string {
	if !strings.Contains(name, ".") {
		return d.QuoteIdentifier(name)
	}
	parts := strings.Split(name, ".")
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = d.QuoteIdentifier(p)
	}
	return strings.Join(quoted, ".")
}

// exprKeywords are grammar words that legitimately appear bare inside an
// expression and are never treated as column references, even when the
// dialect reserves them.
var exprKeywords = map[string]struct{}{
	"and": {}, "or": {}, "not": {}, "is": {}, "null": {}, "in": {},
	"like": {}, "between": {}, "exists": {}, "case": {}, "when": {},
	"then": {}, "else": {}, "end": {}, "true": {}, "false": {},
	"distinct": {}, "asc": {}, "desc": {}, "as": {}, "by": {},
	"collate": {}, "escape": {}, "interval": {},
	"current_date": {}, "current_time": {}, "current_timestamp": {},
	"select": {}, "from": {}, "where": {},
}

// QuoteExprIdents quotes identifiers embedded in raw expression text.
//
// This is deliberately restricted to a documented safe subset: dotted
// table.column tokens are always rewritten, and a bare word is quoted only
// when the dialect reserves it and it is neither an expression grammar
// keyword nor a function call. Anything inside single-quoted string literals
// is left alone. The scan is heuristic; statements that lean on dialect
// keyword grammar beyond this subset belong in a Fragment, which is never
// rewritten.
func (d *Dialect) QuoteExprIdents(sql string, resolve func(table string) string) string {
	var out strings.Builder
	out.Grow(len(sql) + 8)

	i := 0
	for i < len(sql) {
		c := sql[i]

		// Skip string literals untouched.
		if c == '\'' {
			j := i + 1
			for j < len(sql) {
				if sql[j] == '\'' {
					// '' is an escaped quote inside the literal
					if j+1 < len(sql) && sql[j+1] == '\'' {
						j += 2
						continue
					}
					break
				}
				j++
			}
			if j < len(sql) {
				j++
			}
			out.WriteString(sql[i:j])
			i = j
			continue
		}

		if isIdentStart(c) {
			j := i
			for j < len(sql) && isIdentPart(sql[j]) {
				j++
			}
			word := sql[i:j]

			// Only table.column tokens are quoted; the next byte must be a
			// dot followed by another identifier (not a function call).
			if j < len(sql) && sql[j] == '.' && j+1 < len(sql) && isIdentStart(sql[j+1]) {
				k := j + 1
				for k < len(sql) && isIdentPart(sql[k]) {
					k++
				}
				column := sql[j+1 : k]
				table := word
				if resolve != nil {
					table = resolve(table)
				}
				out.WriteString(d.QuoteIdentifier(table))
				out.WriteByte('.')
				out.WriteString(d.QuoteIdentifier(column))
				i = k
				continue
			}

			// Bare reserved words are column references unless they are
			// grammar keywords or the next token opens a call.
			if d.IsReservedWord(word) && !isExprKeyword(word) && !isCallSite(sql, j) {
				out.WriteString(d.QuoteIdentifier(d.NormalizeName(word)))
				i = j
				continue
			}

			out.WriteString(word)
			i = j
			continue
		}

		out.WriteByte(c)
		i++
	}

	return out.String()
}

func isExprKeyword(word string) bool {
	_, ok := exprKeywords[strings.ToLower(word)]
	return ok
}

// isCallSite reports whether the next non-space byte after pos opens a
// function argument list.
func isCallSite(sql string, pos int) bool {
	for pos < len(sql) && (sql[pos] == ' ' || sql[pos] == '\t') {
		pos++
	}
	return pos < len(sql) && sql[pos] == '('
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// ---------- Builder ----------

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
}

// NewDialect creates a new dialect builder with ANSI defaults: double-quote
// identifiers, ? placeholders, lowercase normalization.
func NewDialect(name string) *Builder {
	return &Builder{
		dialect: &Dialect{
			Name: name,
			Identifiers: IdentifierConfig{
				Quote:         `"`,
				QuoteEnd:      `"`,
				Escape:        `""`,
				Normalization: NormLowercase,
			},
			reservedWords: make(map[string]struct{}),
		},
	}
}

// Identifiers configures identifier quoting and normalization.
func (b *Builder) Identifiers(quote, quoteEnd, escape string, norm NormalizationStrategy) *Builder {
	b.dialect.Identifiers = IdentifierConfig{
		Quote:         quote,
		QuoteEnd:      quoteEnd,
		Escape:        escape,
		Normalization: norm,
	}
	return b
}

// PlaceholderStyle sets how query parameters are formatted.
func (b *Builder) PlaceholderStyle(style PlaceholderStyle) *Builder {
	b.dialect.Placeholder = style
	return b
}

// DefaultSchema sets the default schema name.
func (b *Builder) DefaultSchema(schema string) *Builder {
	b.dialect.DefaultSchema = schema
	return b
}

// WithReservedWords registers words that need quoting when used as identifiers.
func (b *Builder) WithReservedWords(words ...string) *Builder {
	for _, w := range words {
		b.dialect.reservedWords[b.dialect.NormalizeName(w)] = struct{}{}
	}
	return b
}

// Build returns the constructed dialect.
func (b *Builder) Build() *Dialect {
	return b.dialect
}
