package clause

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind identifies a clause variant.
type Kind int

// Clause kinds.
const (
	KindSelect Kind = iota + 1
	KindColumns
	KindValues
	KindOrderBy
	KindWhere
	KindLimit
)

var kindNames = map[Kind]string{
	KindSelect:  "select",
	KindColumns: "columns",
	KindValues:  "values",
	KindOrderBy: "order_by",
	KindWhere:   "where",
	KindLimit:   "limit",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Kinds returns every clause kind in rendering order.
func Kinds() []Kind {
	return []Kind{KindSelect, KindColumns, KindValues, KindWhere, KindOrderBy, KindLimit}
}

// ParseKind resolves a clause kind tag such as "select", "ORDER BY" or "order-by".
func ParseKind(s string) (Kind, error) {
	norm := strings.ToLower(strings.Join(strings.Fields(s), "_"))
	norm = strings.ReplaceAll(norm, "-", "_")
	if norm == "orderby" {
		norm = "order_by"
	}
	for k, name := range kindNames {
		if name == norm {
			return k, nil
		}
	}
	return 0, &Error{Kind: ErrUnknownClauseType, Msg: fmt.Sprintf("unknown clause type %q", s)}
}

// quoteContext selects which canonical quote character an item is wrapped in.
type quoteContext int

const (
	quoteIdentifier quoteContext = iota
	quoteColumn
	quoteLiteral
)

// clauseDef configures the normalizer for one clause kind.
type clauseDef struct {
	kind          Kind
	keyword       *regexp.Regexp
	allowWildcard bool
	orderBy       bool
	quote         quoteContext
	// bareKeyword keeps input that is nothing but the keyword as an item to validate.
	bareKeyword bool
}

var clauseDefs = map[Kind]clauseDef{
	KindSelect:  {kind: KindSelect, keyword: keywordPattern("SELECT"), allowWildcard: true, quote: quoteIdentifier, bareKeyword: true},
	KindColumns: {kind: KindColumns, keyword: keywordPattern("COLUMNS"), quote: quoteColumn},
	KindValues:  {kind: KindValues, keyword: keywordPattern("VALUES"), quote: quoteLiteral},
	KindOrderBy: {kind: KindOrderBy, keyword: keywordPattern("ORDER BY"), orderBy: true, quote: quoteIdentifier},
	KindWhere:   {kind: KindWhere, keyword: keywordPattern("WHERE"), quote: quoteIdentifier},
	KindLimit:   {kind: KindLimit, keyword: keywordPattern("LIMIT")},
}
