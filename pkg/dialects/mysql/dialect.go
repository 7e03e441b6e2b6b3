package mysql

import (
	"github.com/leapstack-labs/sqlclause/pkg/dialect"
)

func init() {
	dialect.Register(MySQL)
}

// mysqlReservedWords contains the MySQL 8 reserved words most likely to collide with
// column and table names. Non-reserved keywords (e.g. "name", "status") are omitted.
var mysqlReservedWords = []string{
	"accessible", "add", "all", "alter", "analyze", "and", "as", "asc",
	"before", "between", "bigint", "binary", "blob", "both", "by",
	"call", "cascade", "case", "change", "char", "character", "check", "collate",
	"column", "condition", "constraint", "continue", "convert", "create", "cross",
	"current_date", "current_time", "current_timestamp", "current_user", "cursor",
	"database", "databases", "dec", "decimal", "declare", "default", "delayed",
	"delete", "desc", "describe", "distinct", "div", "double", "drop",
	"each", "else", "elseif", "enclosed", "escaped", "exists", "exit", "explain",
	"false", "fetch", "float", "for", "force", "foreign", "from", "fulltext",
	"generated", "grant", "group", "groups", "having", "high_priority",
	"if", "ignore", "in", "index", "infile", "inner", "insert", "int", "integer",
	"interval", "into", "is", "iterate", "join", "key", "keys", "kill",
	"lateral", "leading", "leave", "left", "like", "limit", "lines", "load",
	"localtime", "localtimestamp", "lock", "long", "loop", "match", "mod",
	"natural", "not", "null", "numeric", "of", "on", "optimize", "option", "or",
	"order", "out", "outer", "partition", "precision", "primary", "procedure",
	"purge", "range", "read", "real", "recursive", "references", "regexp", "release",
	"rename", "repeat", "replace", "require", "restrict", "return", "revoke", "right",
	"rlike", "schema", "schemas", "select", "separator", "set", "show", "signal",
	"smallint", "spatial", "sql", "ssl", "starting", "table", "terminated", "then",
	"to", "trailing", "trigger", "true", "undo", "union", "unique", "unlock",
	"unsigned", "update", "usage", "use", "using", "values", "varchar", "varying",
	"when", "where", "while", "window", "with", "write", "xor", "zerofill",
}

// MySQL is the MySQL dialect: backtick identifiers and single-quoted literals.
var MySQL = dialect.New(Config).
	WithReservedWords(mysqlReservedWords...).
	MustBuild()
