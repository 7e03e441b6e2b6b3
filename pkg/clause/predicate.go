package clause

import (
	"fmt"
	"log/slog"
	"strings"
)

// BoolOp joins two adjacent WHERE predicates.
type BoolOp int

// Boolean connectors.
const (
	And BoolOp = iota
	Or
)

func (op BoolOp) String() string {
	if op == Or {
		return "OR"
	}
	return "AND"
}

// Predicate is a WHERE condition. A leaf carries normalized Text; a group carries
// Items joined positionally by Connectors, with len(Connectors) == len(Items)-1.
//
// Groups are flat: connectors are applied left to right with no precedence, and
// nested groups are never produced by the parser.
type Predicate struct {
	Text       string
	Items      []*Predicate
	Connectors []BoolOp
}

// IsLeaf reports whether p is a single condition.
func (p *Predicate) IsLeaf() bool {
	return len(p.Items) == 0
}

// IsEmpty reports whether p holds no condition at all.
func (p *Predicate) IsEmpty() bool {
	return p == nil || (p.IsLeaf() && p.Text == "")
}

// Texts returns the rendered text of every direct item.
func (p *Predicate) Texts() []string {
	if p.IsEmpty() {
		return nil
	}
	if p.IsLeaf() {
		return []string{p.Text}
	}
	out := make([]string, len(p.Items))
	for i, item := range p.Items {
		out[i] = item.String()
	}
	return out
}

// String renders p without the WHERE keyword, each item in parentheses.
func (p *Predicate) String() string {
	if p.IsEmpty() {
		return ""
	}
	if p.IsLeaf() {
		return p.Text
	}
	var b strings.Builder
	for i, item := range p.Items {
		if i > 0 {
			fmt.Fprintf(&b, " %s ", p.Connectors[i-1])
		}
		b.WriteString("(" + item.String() + ")")
	}
	return b.String()
}

// appendGroup concatenates other onto p joined by op.
func (p *Predicate) appendGroup(other *Predicate, op BoolOp) {
	if len(p.Items) > 0 && len(other.Items) > 0 {
		p.Connectors = append(p.Connectors, op)
	}
	p.Items = append(p.Items, other.Items...)
	p.Connectors = append(p.Connectors, other.Connectors...)
}

// where parses raw WHERE input into a flat predicate group.
// List elements are joined to each other with AND whatever connectors they use internally.
func (n *Normalizer) where(raw any) (*Predicate, error) {
	root := &Predicate{}
	if raw == nil {
		return root, nil
	}

	var segments []string
	switch v := raw.(type) {
	case string:
		segments = []string{stripKeyword(strings.TrimSpace(v), n.def.keyword)}
	case *string:
		if v == nil {
			return root, nil
		}
		return n.where(*v)
	case []string:
		segments = v
	case []any:
		for _, elem := range v {
			s, ok := asString(elem)
			if !ok {
				return nil, newError(ErrUnsupportedInput, n.def.kind, "", "unsupported predicate type %T", elem)
			}
			segments = append(segments, s)
		}
	case fmt.Stringer:
		return n.where(v.String())
	default:
		return nil, newError(ErrUnsupportedInput, n.def.kind, "", "unsupported input type %T", raw)
	}

	for _, seg := range segments {
		group, err := n.predicates(seg)
		if err != nil {
			return nil, err
		}
		root.appendGroup(group, And)
	}

	n.logger.Debug("normalized where clause",
		slog.Any("raw", raw),
		slog.Any("items", root.Texts()),
		slog.Int("connectors", len(root.Connectors)))
	return root, nil
}

// predicates splits one segment on top-level AND/OR and normalizes every condition.
// A bracketed part holding its own AND/OR is flattened into the group in place.
func (n *Normalizer) predicates(segment string) (*Predicate, error) {
	group := &Predicate{}
	parts, ops := splitBoolean(stripBrackets(strings.TrimSpace(segment)))

	for i, part := range parts {
		if inner := stripBrackets(strings.TrimSpace(part)); inner != strings.TrimSpace(part) {
			if sub, _ := splitBoolean(inner); len(sub) > 1 {
				nested, err := n.predicates(inner)
				if err != nil {
					return nil, err
				}
				op := And
				if i > 0 {
					op = ops[i-1]
				}
				group.appendGroup(nested, op)
				continue
			}
		}

		text, err := n.condition(part)
		if err != nil {
			return nil, err
		}
		if text == "" {
			// A dangling connector such as "a = 1 AND" leaves an empty part.
			if len(parts) > 1 {
				return nil, newError(ErrEmptyPredicate, n.def.kind, segment, "connector without a condition")
			}
			continue
		}
		if len(group.Items) > 0 {
			group.Connectors = append(group.Connectors, ops[i-1])
		}
		group.Items = append(group.Items, &Predicate{Text: text})
	}
	return group, nil
}

// condition normalizes a single predicate. Only the leading operand is treated as an
// identifier; the rest of the condition passes through with whitespace collapsed.
func (n *Normalizer) condition(raw string) (string, error) {
	s := stripBrackets(strings.TrimSpace(raw))
	if s == "" {
		return "", nil
	}

	end := operandEnd(s)
	operand, err := n.item(s[:end], false)
	if err != nil {
		return "", err
	}
	rest := collapseSpace(strings.TrimSpace(s[end:]))
	if rest == "" {
		return operand, nil
	}
	return operand + " " + rest, nil
}

// operandEnd returns the end of the leading operand: the first top-level whitespace
// or comparison operator character.
func operandEnd(s string) int {
	var sc scanner
	for i := 0; i < len(s); i++ {
		c := s[i]
		if sc.step(c) && (isSpace(c) || strings.IndexByte("=<>!", c) >= 0) {
			return i
		}
	}
	return len(s)
}

// splitBoolean splits s on top-level, case-insensitive AND/OR words and returns the
// parts with the connector found between each adjacent pair. The AND of
// "BETWEEN x AND y" is not a connector.
func splitBoolean(s string) ([]string, []BoolOp) {
	var (
		parts   []string
		ops     []BoolOp
		sc      scanner
		start   int
		between bool
	)
	for i := 0; i < len(s); i++ {
		top := sc.step(s[i])
		if !top || !isWordStart(s, i) {
			continue
		}
		word := wordAt(s, i)
		switch strings.ToUpper(word) {
		case "BETWEEN":
			between = true
		case "AND":
			if between {
				between = false
				break
			}
			parts = append(parts, s[start:i])
			ops = append(ops, And)
			start = i + len(word)
		case "OR":
			parts = append(parts, s[start:i])
			ops = append(ops, Or)
			start = i + len(word)
		}
		i += len(word) - 1
	}
	return append(parts, s[start:]), ops
}

// isWordStart reports whether a word begins at s[i].
func isWordStart(s string, i int) bool {
	return isIdentStart(s[i]) && (i == 0 || !isIdentChar(s[i-1]) && s[i-1] != '$' && s[i-1] != '.')
}

func wordAt(s string, i int) string {
	j := i
	for j < len(s) && isIdentChar(s[j]) {
		j++
	}
	return s[i:j]
}
