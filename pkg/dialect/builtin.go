package dialect

// builtinANSI is the base ANSI dialect: double-quote identifiers, ?
// placeholders. Registered automatically when the package is loaded and used
// as the default when no dialect is named.
var builtinANSI = NewDialect("ansi").
	Identifiers(`"`, `"`, `""`, NormLowercase).
	PlaceholderStyle(PlaceholderQuestion).
	WithReservedWords(
		"all", "and", "as", "asc", "between", "by", "case", "cast", "check",
		"column", "create", "cross", "current_date", "current_time",
		"current_timestamp", "default", "delete", "desc", "distinct", "drop",
		"else", "end", "except", "exists", "false", "from", "full", "group",
		"having", "in", "inner", "insert", "intersect", "into", "is", "join",
		"left", "like", "limit", "not", "null", "offset", "on", "or", "order",
		"outer", "primary", "references", "right", "select", "set", "table",
		"then", "true", "union", "unique", "update", "user", "using",
		"values", "when", "where", "with",
	).
	Build()

func init() {
	Register(builtinANSI)
	SetDefault(builtinANSI)
}
