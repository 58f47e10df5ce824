package highlight

import (
	"regexp"

	"github.com/pkg/errors"
)

// A Rule highlights every match of Pattern within a line with the style for Class.
// Only the span of capture group Group is highlighted; group 0 is the whole match.
type Rule struct {
	Pattern *regexp.Regexp
	Group   int
	Class   Class
}

// A MultilineRule highlights text between two occurrences of Delimiter, which may
// be on different lines. State is the line state that marks a line ending inside
// such a span; it must be non-zero and unique within a Table.
type MultilineRule struct {
	Delimiter *regexp.Regexp
	State     State
	Class     Class
}

// A Table is a compiled set of highlighting rules for one language.
// Tables are immutable and safe for concurrent use.
type Table struct {
	rules     []Rule
	multiline []MultilineRule
}

// Rules returns the single-line rules of t in the order they are applied.
// Callers should not modify the returned slice.
func (t *Table) Rules() []Rule { return t.rules }

// Multiline returns the multi-line rules of t in the order they are tried.
// Callers should not modify the returned slice.
func (t *Table) Multiline() []MultilineRule { return t.multiline }

// A RuleDef is the uncompiled form of a Rule.
type RuleDef struct {
	Pattern string
	Group   int
	Class   Class
}

// A MultilineDef is the uncompiled form of a MultilineRule.
type MultilineDef struct {
	Delimiter string
	State     State
	Class     Class
}

// Compile builds a Table from rule definitions, preserving their order.
// It fails if any pattern is invalid, if a rule refers to a capture group its
// pattern doesn't have, if a delimiter can match the empty string, or if
// multi-line states are zero or repeated.
func Compile(rules []RuleDef, multiline []MultilineDef) (*Table, error) {
	t := &Table{rules: make([]Rule, 0, len(rules)), multiline: make([]MultilineRule, 0, len(multiline))}
	for _, d := range rules {
		re, err := regexp.Compile(d.Pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "highlight: rule %q", d.Pattern)
		}
		if d.Group < 0 || d.Group > re.NumSubexp() {
			return nil, errors.Errorf("highlight: rule %q has no capture group %d", d.Pattern, d.Group)
		}
		t.rules = append(t.rules, Rule{Pattern: re, Group: d.Group, Class: d.Class})
	}
	seen := map[State]bool{}
	for _, d := range multiline {
		re, err := regexp.Compile(d.Delimiter)
		if err != nil {
			return nil, errors.Wrapf(err, "highlight: delimiter %q", d.Delimiter)
		}
		if re.MatchString("") {
			return nil, errors.Errorf("highlight: delimiter %q matches the empty string", d.Delimiter)
		}
		if d.State == Clean || seen[d.State] {
			return nil, errors.Errorf("highlight: delimiter %q: state %d is reserved or already in use", d.Delimiter, d.State)
		}
		seen[d.State] = true
		t.multiline = append(t.multiline, MultilineRule{Delimiter: re, State: d.State, Class: d.Class})
	}
	return t, nil
}

// MustCompile is like Compile but panics on error.
// It simplifies initialization of global variables holding tables.
func MustCompile(rules []RuleDef, multiline []MultilineDef) *Table {
	t, err := Compile(rules, multiline)
	if err != nil {
		panic(err)
	}
	return t
}

// Line states used by the C# tables.
const (
	Clean          State = 0
	InTripleSingle State = 1
	InTripleDouble State = 2
)

var csKeywords = []string{
	"abstract", "false", "finally", "fixed", "float", "for", "foreach", "static", "bool", "continue", "decimal",
	"default", "event", "explicit", "extern", "char", "checked", "class", "const", "break", "as", "base", "delegate",
	"is", "lock", "long", "num", "byte", "case", "catch", "goto", "if", "implicit", "in", "int",
	"interface", "internal", "do", "double", "else", "namespace", "new", "null", "object", "operator",
	"out", "override", "params", "private", "protected", "public", "readonly", "sealed", "short", "sizeof",
	"ref", "return", "sbyte", "stackalloc", "string", "struct", "void", "volatile", "while",
	"true", "try", "switch", "this", "throw", "unchecked", "unsafe", "ushort", "using", "virtual", "typeof",
	"uint", "ulong", "add", "alias", "async", "await", "dynamic", "from", "get", "orderby", "ascending",
	"decending", "group", "into", "join", "let", "nameof", "global", "partial", "set", "remove", "select",
	"value", "var", "when", "where", "yield",
}

var csOperators = []string{
	"=",
	"!", "?", ":",
	"==", "!=", "<", "<=", ">", ">=",
	"+", "-", "*", "/", "%", "**",
	"+=", "-=", "*=", "/=", "%=", "<<=", ">>=", "&=", "^=", "|=",
	"^", "|", "&", "~", ">>", "<<",
}

var csBraces = []string{"{", "}", "(", ")", "[", "]"}

// Keywords returns the C# keywords that are highlighted, in table order.
func Keywords() []string { return append([]string(nil), csKeywords...) }

// Operators returns the operator tokens that are highlighted, in table order.
func Operators() []string { return append([]string(nil), csOperators...) }

func csRules(legacy bool) []RuleDef {
	var defs []RuleDef
	for _, w := range csKeywords {
		defs = append(defs, RuleDef{`\b` + w + `\b`, 0, Keyword})
	}
	for _, o := range csOperators {
		defs = append(defs, RuleDef{regexp.QuoteMeta(o), 0, Operator})
	}
	for _, b := range csBraces {
		defs = append(defs, RuleDef{regexp.QuoteMeta(b), 0, Brace})
	}
	if legacy {
		defs = append(defs, RuleDef{`\bself\b`, 0, Self})
	}
	defs = append(defs,
		// Strings, possibly containing escape sequences
		RuleDef{`"[^"\\]*(\\.[^"\\]*)*"`, 0, String},
		RuleDef{`'[^'\\]*(\\.[^'\\]*)*'`, 0, String},
	)
	if legacy {
		defs = append(defs, RuleDef{`\bdef\b\s*(\w+)`, 1, DefClass})
	}
	defs = append(defs,
		RuleDef{`\bclass\b\s*(\w+)`, 1, DefClass},
		RuleDef{`//[^\n]*`, 0, Comment},
		RuleDef{`\b[+-]?[0-9]+[lL]?\b`, 0, Numbers},
		RuleDef{`\b[+-]?0[xX][0-9A-Fa-f]+[lL]?\b`, 0, Numbers},
		RuleDef{`\b[+-]?[0-9]+(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?\b`, 0, Numbers},
	)
	return defs
}

var csMultiline = []MultilineDef{
	{`'''`, InTripleSingle, String2},
	{`"""`, InTripleDouble, String2},
}

var (
	// CSharp is the C# table, including the triple-quoted strings and the
	// self and def rules it has always supported.
	CSharp = MustCompile(csRules(true), csMultiline)
	// CSharpStrict is the C# table without the legacy rules.
	CSharpStrict = MustCompile(csRules(false), nil)
)
