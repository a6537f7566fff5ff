package subscriptions

import "fmt"

type patternKind uint8

const (
	patternUnset patternKind = iota
	patternLiteral
	patternAny
)

// Pattern matches one field of a Feed. It is either a literal value or a
// wildcard. The zero Pattern is unset and matches nothing.
type Pattern struct {
	kind  patternKind
	value string
}

func Literal(value string) Pattern {
	return Pattern{kind: patternLiteral, value: value}
}

func Any() Pattern {
	return Pattern{kind: patternAny}
}

func (p Pattern) IsSet() bool {
	return p.kind != patternUnset
}

func (p Pattern) IsAny() bool {
	return p.kind == patternAny
}

// Value returns the literal value, or false for wildcard and unset patterns.
func (p Pattern) Value() (string, bool) {
	return p.value, p.kind == patternLiteral
}

func (p Pattern) Matches(value string) bool {
	switch p.kind {
	case patternAny:
		return true
	case patternLiteral:
		return p.value == value
	default:
		return false
	}
}

func (p Pattern) String() string {
	switch p.kind {
	case patternAny:
		return "*"
	case patternLiteral:
		return fmt.Sprintf("%q", p.value)
	default:
		return "<unset>"
	}
}

// Query selects feeds by URL, title and category. Every field must be set,
// either to a literal or to Any().
type Query struct {
	URL      Pattern
	Title    Pattern
	Category Pattern
}

// MatchAll returns a query with every field set to Any().
func MatchAll() Query {
	return Query{URL: Any(), Title: Any(), Category: Any()}
}

func (q Query) Complete() bool {
	return q.URL.IsSet() && q.Title.IsSet() && q.Category.IsSet()
}

func (q Query) Matches(f Feed) bool {
	return q.URL.Matches(f.XMLURL) && q.Title.Matches(f.Title) && q.Category.Matches(f.Category)
}

func (q Query) String() string {
	return fmt.Sprintf("url=%s title=%s category=%s", q.URL, q.Title, q.Category)
}
