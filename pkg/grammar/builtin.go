package grammar

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spicery/snippet-tokenizer/pkg/token"
)

// DefaultFallback is the grammar used by Builtin for unknown identifiers.
const DefaultFallback = "javascript"

// Shared pattern fragments. Every construct that may span lines ends with an
// alternative anchored at \z so an unterminated span runs to end of input.
//
// Patterns are tried at every position of the input, so a lookbehind that
// may scan a long stretch of text sits behind a cheap check that rules out
// most positions, and long forward scans are atomic. This keeps tokenizing
// linear in the input length.
const (
	slashComments = `//.*|/\*[\s\S]*?(?:\*/|\z)`
	blockComment  = `/\*[\s\S]*?(?:\*/|\z)`
	markupComment = `<!--[\s\S]*?(?:-->|\z)`
	dqString      = `"(?:[^"\\\n]|\\[\s\S])*"?`
	sqString      = `'(?:[^'\\\n]|\\[\s\S])*'?`
	callName      = `(?<![\w$])[A-Za-z_$][\w$]*(?=\s*\()`
	cNumber       = `(?<![\w$.])(?:0[xX][\da-fA-F_]+|0[bB][01_]+|0[oO][0-7_]+|\d[\d_]*(?:\.\d+)?(?:[eE][+-]?\d+)?)[nLlFfDd]?(?![\w$])`
	brackets      = `[{}()\[\];,]`
	lineStart     = `(?![ \t])(?<=(?:^|\n)[ \t]*)`

	templateString = "`(?:[^`\\\\]|\\\\[\\s\\S])*(?:`|\\z)"

	// Identifier characters, for keyword boundaries.
	jsIdent  = `[\w$]`
	wordChar = `\w`
)

var jsKeywords = []string{
	"async", "await", "break", "case", "catch", "class", "const", "continue",
	"debugger", "default", "delete", "do", "else", "export", "extends", "false",
	"finally", "for", "from", "function", "if", "import", "in", "instanceof",
	"let", "new", "null", "of", "return", "static", "super",
	"switch", "this", "throw", "true", "try", "typeof", "undefined", "var",
	"void", "while", "with", "yield",
}

var tsKeywords = []string{
	"abstract", "any", "as", "asserts", "bigint", "boolean", "declare", "enum",
	"implements", "infer", "interface", "is", "keyof", "module", "namespace",
	"never", "number", "object", "override", "private", "protected", "public",
	"readonly", "satisfies", "string", "symbol", "type", "unique", "unknown",
}

var sqlKeywords = []string{
	"add", "all", "alter", "and", "as", "asc", "auto_increment", "begin",
	"between", "by", "cascade", "case", "check", "column", "commit",
	"constraint", "create", "cross", "database", "default", "delete", "desc",
	"distinct", "drop", "else", "end", "exists", "false", "foreign", "from",
	"full", "grant", "group", "having", "if", "ilike", "in", "index", "inner",
	"insert", "intersect", "into", "is", "join", "key", "left", "like", "limit",
	"natural", "not", "null", "offset", "on", "or", "order", "outer", "over",
	"partition", "primary", "recursive", "references", "rename", "replace",
	"returning", "revoke", "right", "rollback", "schema", "select", "set",
	"table", "then", "to", "transaction", "true", "truncate", "union", "unique",
	"update", "using", "values", "view", "when", "where", "window", "with",
	// data types
	"bigint", "blob", "bool", "boolean", "char", "date", "datetime", "decimal",
	"double", "float", "int", "integer", "json", "jsonb", "numeric", "real",
	"serial", "smallint", "text", "time", "timestamp", "tinyint", "uuid",
	"varchar",
}

var javaKeywords = []string{
	"abstract", "assert", "boolean", "break", "byte", "case", "catch", "char",
	"class", "const", "continue", "default", "do", "double", "else", "enum",
	"extends", "false", "final", "finally", "float", "for", "goto", "if",
	"implements", "import", "instanceof", "int", "interface", "long", "native",
	"new", "non-sealed", "null", "package", "permits", "private", "protected",
	"public", "record", "return", "sealed", "short", "static", "strictfp",
	"super", "switch", "synchronized", "this", "throw", "throws", "transient",
	"true", "try", "var", "void", "volatile", "while", "yield",
}

var pythonKeywords = []string{
	"False", "None", "True", "and", "as", "assert", "async", "await", "break",
	"case", "class", "continue", "def", "del", "elif", "else", "except",
	"finally", "for", "from", "global", "if", "import", "in", "is", "lambda",
	"match", "nonlocal", "not", "or", "pass", "raise", "return", "try", "while",
	"with", "yield",
}

// words builds a whole-word alternation. ident matches the characters that
// may continue an identifier in the language.
func words(ident string, lists ...[]string) string {
	var all []string
	for _, l := range lists {
		all = append(all, l...)
	}
	return `(?<!` + ident + `)(?:` + strings.Join(all, "|") + `)(?!` + ident + `)`
}

func alt(patterns ...string) string {
	return strings.Join(patterns, "|")
}

func javascriptRules(keywords ...[]string) []Rule {
	return []Rule{
		{Type: token.Comment, Pattern: slashComments, Examples: []string{"// note", "/* a\nb */", `"x" /* c */`}},
		{Type: token.String, Pattern: alt(dqString, sqString, templateString), Examples: []string{`"a // b"`, `'x'`, "`line\nline`"}},
		{Type: token.Keyword, Pattern: words(jsIdent, append([][]string{jsKeywords}, keywords...)...), Examples: []string{"const", "return x", "if (x)", "-null"}},
		{Type: token.Function, Pattern: callName, Examples: []string{"alert(1)", "fetch (url)", "$(el)"}},
		{Type: token.Number, Pattern: cNumber, Examples: []string{"42", "0xFF", "3.14", "10n", "1e-9"}},
		{Type: token.Punctuation, Pattern: brackets, Examples: []string{"{", ")", ";"}},
	}
}

func javascriptDefinition() Definition {
	return Definition{
		Name:       "javascript",
		Aliases:    []string{"js", "jsx", "node"},
		Extensions: []string{".js", ".mjs", ".cjs", ".jsx"},
		Rules:      javascriptRules(),
	}
}

func typescriptRules() []Rule {
	rules := javascriptRules(tsKeywords)
	decorator := Rule{Type: token.Annotation, Pattern: `@[A-Za-z_$][\w$]*`, Examples: []string{"@Component", "@Input() name"}}
	// Decorators go right after strings so "@Input()" is not read as a call.
	return insertAfter(rules, token.String, decorator)
}

func typescriptDefinition() Definition {
	return Definition{
		Name:       "typescript",
		Aliases:    []string{"ts"},
		Extensions: []string{".ts", ".mts", ".cts"},
		Rules:      typescriptRules(),
	}
}

func reactDefinition() Definition {
	rules := typescriptRules()
	rules = insertAfter(rules, token.String,
		Rule{Type: token.Tag, Pattern: `</?[A-Za-z][\w.:-]*(?=[\s/>])|/>`, Examples: []string{"<App />", "</div>", "<Foo.Bar>"}},
		Rule{Type: token.AttrName, Pattern: `(?<![\w:-])(?=[A-Za-z_][\w:-]*=["'{])(?<=<[A-Za-z][\w.:-]*\s[^<>]{0,512})[A-Za-z_][\w:-]*`, Examples: []string{`<div className="x">`, `<Button onClick={go}>`}},
	)
	return Definition{
		Name:       "react",
		Aliases:    []string{"tsx"},
		Extensions: []string{".tsx"},
		Rules:      rules,
	}
}

// markupTag matches a whole start or end tag with its attributes, or a
// stray closer. The attribute loop is atomic so each tag is scanned once.
const markupTag = `</?[A-Za-z][\w:.-]*(?>(?:\s+|[^\s"'<>/=]+|=\s*(?:"[^"]*"?|'[^']*'?|[^\s"'=<>` + "`" + `]*)|/(?!>))*)/?>?|/?>`

// markupTagRules split the text of one tag. They only see that text, so
// their lookbehinds stop at the start of the tag.
func markupTagRules() []Rule {
	return []Rule{
		{Type: token.Tag, Pattern: `\A</?[A-Za-z][\w:.-]*|/?>\z`, Examples: []string{"<div>", "</p>", "<br/>"}},
		{Type: token.AttrValue, Pattern: `(?=[^\s=])(?<==\s*)(?:"[^"]*"?|'[^']*'?|[^\s"'=<>` + "`" + `]+)`, Examples: []string{`<a href="x">`, `<td colspan=2>`, `<a title = 'y'>`}},
		{Type: token.AttrName, Pattern: `[^\s"'<>/=]+`, Examples: []string{`<input disabled>`, `<a href="x">`, `<b @click="go">`}},
	}
}

func markupRules(extra ...Rule) []Rule {
	rules := []Rule{
		{Type: token.Comment, Pattern: markupComment, Examples: []string{"<!-- a -->", "<!--\nhi\n-->"}},
	}
	rules = append(rules, extra...)
	return append(rules,
		Rule{Type: token.Keyword, Pattern: `<!(?i:doctype)[^>]*>?`, Examples: []string{"<!DOCTYPE html>", "<!doctype html>"}},
		Rule{Type: token.Tag, Pattern: markupTag, Examples: []string{"<div>", "</p>", "<br/>", `<a href="x">`}, Inside: markupTagRules()},
	)
}

func htmlDefinition() Definition {
	return Definition{
		Name:       "html",
		Aliases:    []string{"htm", "xhtml"},
		Extensions: []string{".html", ".htm", ".xhtml"},
		Rules:      markupRules(),
	}
}

func xmlDefinition() Definition {
	return Definition{
		Name:       "xml",
		Aliases:    []string{"svg", "xsd"},
		Extensions: []string{".xml", ".svg", ".xsd", ".pom"},
		Rules: markupRules(
			Rule{Type: token.String, Pattern: `<!\[CDATA\[[\s\S]*?(?:\]\]>|\z)`, Examples: []string{"<![CDATA[x < y]]>"}},
			Rule{Type: token.Annotation, Pattern: `<\?[\s\S]*?(?:\?>|\z)`, Examples: []string{`<?xml version="1.0"?>`}},
		),
	}
}

func cssDefinition() Definition {
	return Definition{
		Name:       "css",
		Aliases:    []string{"scss", "less"},
		Extensions: []string{".css", ".scss", ".less"},
		Rules: []Rule{
			{Type: token.Comment, Pattern: blockComment, Examples: []string{"/* x */"}},
			{Type: token.String, Pattern: alt(dqString, sqString), Examples: []string{`"a.png"`}},
			{Type: token.Keyword, Pattern: `@[\w-]+|!important\b`, Examples: []string{"@media screen", "a { b: c !important; }"}},
			// A selector starts after a block boundary or an at-rule keyword.
			{Type: token.Selector, Pattern: `(?<![^\s{};/])(?=[^\s{};/@])(?<=(?:^|[{};/]|@[\w-]+)\s*)[^\s{};/@](?>(?:[^\s{};/]|\s+(?=[^\s{};/]))*)(?=\s*\{)`, Examples: []string{"body {", ".a > b:hover {}", "#main{", "@media print { p {"}},
			{Type: token.Property, Pattern: `(?=[-A-Za-z])(?<=[{;]\s*)-{0,2}[A-Za-z][\w-]*(?=\s*:)`, Examples: []string{"a { color: red; }", "p{--gap:1px}"}},
			{Type: token.Function, Pattern: `(?<![\w-])[A-Za-z-][\w-]*(?=\()`, Examples: []string{"rgba(0,0,0,1)", "url(x)"}},
			{Type: token.Number, Pattern: `#[\da-fA-F]{3,8}\b|(?<![\w-])-?\d*\.?\d+(?:%|[A-Za-z]+)?`, Examples: []string{"12px", "#fff;", "50%", "-0.5em"}},
			{Type: token.Punctuation, Pattern: `[{}()\[\];,:]`, Examples: []string{"{", ";"}},
		},
	}
}

func sqlDefinition() Definition {
	return Definition{
		Name:       "sql",
		Aliases:    []string{"mysql", "postgresql", "sqlite"},
		Extensions: []string{".sql"},
		IgnoreCase: true,
		Rules: []Rule{
			{Type: token.Comment, Pattern: `--.*|` + blockComment, Examples: []string{"-- note", "/* a */"}},
			{Type: token.String, Pattern: `'(?:[^']|'')*'?`, Examples: []string{"'it''s'", "'a\nb'"}},
			{Type: token.Property, Pattern: `"(?:[^"]|"")*"?|` + "`[^`]*`?" + `|\[[^\[\]\n]*\]`, Examples: []string{`"Users"`, "`order`", "[Name]"}},
			{Type: token.Keyword, Pattern: words(wordChar, sqlKeywords), Examples: []string{"SELECT", "select", "VARCHAR(20)", "Table"}},
			{Type: token.Annotation, Pattern: `(?<![\w:]):[A-Za-z_]\w*|@@?[A-Za-z_]\w*|\$\d+|\?`, Examples: []string{"id = :id", "@var", "$1", "?"}},
			{Type: token.Function, Pattern: `(?<!\w)[A-Za-z_]\w*(?=\s*\()`, Examples: []string{"count(*)", "COALESCE (a, b)"}},
			{Type: token.Number, Pattern: `(?<![\w.])\d+(?:\.\d+)?(?:e[+-]?\d+)?(?!\w)`, Examples: []string{"42", "3.5", "1E3"}},
			{Type: token.Punctuation, Pattern: `[(),;.]`, Examples: []string{"(", ";"}},
		},
	}
}

func jsonDefinition() Definition {
	return Definition{
		Name:       "json",
		Aliases:    []string{"jsonc", "json5"},
		Extensions: []string{".json", ".jsonc", ".json5"},
		Rules: []Rule{
			{Type: token.Comment, Pattern: slashComments, Examples: []string{"// jsonc"}},
			{Type: token.Property, Pattern: `"(?:[^"\\\n]|\\.)*"(?=\s*:)`, Examples: []string{`{"a": 1}`, `"k" :`}},
			{Type: token.String, Pattern: dqString, Examples: []string{`"v"`, `["a\"b"]`}},
			{Type: token.Keyword, Pattern: `(?<!\w)(?:true|false|null)(?!\w)`, Examples: []string{"true", "null"}},
			{Type: token.Number, Pattern: `(?<![\w.-])-?\d+(?:\.\d+)?(?:[eE][+-]?\d+)?(?![\w.])`, Examples: []string{"-1", "2.5e3"}},
			{Type: token.Punctuation, Pattern: `[{}\[\],:]`, Examples: []string{"{", ","}},
		},
	}
}

// scalarEnd is the lookahead for the end of a plain YAML scalar.
const scalarEnd = `(?=[ \t]*(?:#|,|\]|\}|\n|\z))`

// scalarStart is the lookbehind for the start of a YAML scalar or indicator.
const scalarStart = `(?<=^|[\s:\[{,-])`

func yamlDefinition() Definition {
	return Definition{
		Name:       "yaml",
		Aliases:    []string{"yml"},
		Extensions: []string{".yaml", ".yml"},
		Rules: []Rule{
			{Type: token.Comment, Pattern: `(?<!\S)#.*`, Examples: []string{"# c", "a: 1 # c"}},
			{Type: token.Punctuation, Pattern: `(?<=^|\n)(?:---|\.\.\.)(?=[ \t]*(?:\n|\z))`, Examples: []string{"---", "a: 1\n..."}},
			{Type: token.Property, Pattern: `(?=\S)(?<=(?:^|\n)[ \t]*(?:-[ \t]+)*|[{,][ \t]*)(?:"[^"\n]*"|'[^'\n]*'|[^\s#:{}\[\],'"&*!|>%@` + "`" + `-](?>(?:[^\s#:{}\[\],]|[ \t]+(?=[^\s#:{}\[\],]))*))(?=[ \t]*:(?:[ \t\n]|\z))`, Examples: []string{"name: x", "- id: 1", `"quoted key": v`, "{a: 1}", "full name : x"}},
			{Type: token.String, Pattern: scalarStart + `(?:"(?:[^"\\]|\\[\s\S])*"?|'(?:[^']|'')*'?)`, Examples: []string{"k: 'v'", `k: "v"`}},
			{Type: token.Annotation, Pattern: scalarStart + `(?:[&*][\w-]+|!!?[\w/.-]*)`, Examples: []string{"base: &anchor", "<<: *anchor", "x: !!str 1"}},
			{Type: token.Keyword, Pattern: scalarStart + `(?i:true|false|yes|no|on|off|null|~)` + scalarEnd, Examples: []string{"enabled: true", "v: ~"}},
			{Type: token.Number, Pattern: scalarStart + `[-+]?(?:0x[\da-fA-F]+|\d[\d_]*(?:\.\d+)?(?:[eE][+-]?\d+)?)` + scalarEnd, Examples: []string{"port: 8080", "- 1.5"}},
			{Type: token.Punctuation, Pattern: `[{}\[\],]|` + lineStart + `-(?=[ \t\n]|\z)|:(?=[ \t\n]|\z)|[|>][-+]?(?=[ \t]*(?:\n|\z))`, Examples: []string{"- item", "a: |\n  x", "[1, 2]"}},
		},
	}
}

func markdownDefinition() Definition {
	fence := func(marker string) string {
		return lineStart + marker + `[\s\S]*?(?:\n[ \t]*` + marker + `[ \t]*(?=\n|\z)|\z)`
	}
	return Definition{
		Name:       "markdown",
		Aliases:    []string{"md"},
		Extensions: []string{".md", ".markdown"},
		Rules: []Rule{
			{Type: token.Annotation, Pattern: `(?<=^|\n)(?:---|\+\+\+)[ \t]*(?=\n|\z)`, Examples: []string{"---\ntitle: x\n---"}},
			{Type: token.String, Pattern: alt(fence("```"), fence("~~~"), "`[^`\\n]+`"), Examples: []string{"```go\nx := 1\n```", "~~~\ncode", "use `x`"}},
			{Type: token.Comment, Pattern: markupComment, Examples: []string{"<!-- todo -->"}},
			{Type: token.Keyword, Pattern: lineStart + `#{1,6}(?=[ \t]|\n|\z)[^\n]*|\*\*[^*\n]+\*\*|(?<!\w)__[^_\n]+__(?!\w)`, Examples: []string{"# Title", "## Sub", "**bold**"}},
			{Type: token.Italic, Pattern: `(?<![\w*])\*(?![\s*])[^*\n]+?\*(?!\*)|(?<![\w_])_(?![\s_])[^_\n]+?_(?![\w_])`, Examples: []string{"*em*", "_em_"}},
			{Type: token.Link, Pattern: `!?\[[^\[\]\n]*\]\([^)\n]*\)|!?\[[^\[\]\n]*\]\[[^\]\n]*\]|<https?://[^>\s]+>|https?://[^\s)>\]]+`, Examples: []string{"[a](http://x)", "![img](a.png)", "see https://x.io"}},
			{Type: token.Punctuation, Pattern: lineStart + `(?:[-*+]|\d+[.)])(?=[ \t])|` + lineStart + `>`, Examples: []string{"- item", "1. one", "> quote"}},
		},
	}
}

func javaDefinition() Definition {
	return Definition{
		Name:       "java",
		Aliases:    []string{"kotlin", "groovy"},
		Extensions: []string{".java"},
		Rules: []Rule{
			{Type: token.Comment, Pattern: slashComments, Examples: []string{"// x", "/** doc */"}},
			{Type: token.String, Pattern: alt(`"""[\s\S]*?(?:"""|\z)`, dqString, sqString), Examples: []string{`"s"`, `'c'`, "\"\"\"\ntext\n\"\"\""}},
			{Type: token.Annotation, Pattern: `@(?!interface\b)[A-Za-z_]\w*(?:\.[A-Za-z_]\w*)*`, Examples: []string{"@Override", "@javax.inject.Inject"}},
			{Type: token.Keyword, Pattern: words(jsIdent, javaKeywords), Examples: []string{"public", "int", "non-sealed"}},
			{Type: token.Function, Pattern: callName, Examples: []string{"println(x)"}},
			{Type: token.Number, Pattern: cNumber, Examples: []string{"10L", "0x1F", "1.5f"}},
			{Type: token.Punctuation, Pattern: brackets, Examples: []string{"{", ";"}},
		},
	}
}

func pythonDefinition() Definition {
	return Definition{
		Name:       "python",
		Aliases:    []string{"py", "python3"},
		Extensions: []string{".py", ".pyi"},
		Rules: []Rule{
			{Type: token.Comment, Pattern: `#.*`, Examples: []string{"# x"}},
			{Type: token.String, Pattern: `(?<!\w)(?i:[rbuf]{0,2})(?:"""[\s\S]*?(?:"""|\z)|'''[\s\S]*?(?:'''|\z)|` + dqString + `|` + sqString + `)`, Examples: []string{`"s"`, `f"{x}"`, "'''doc\nstring'''", `rb'\d'`}},
			{Type: token.Annotation, Pattern: lineStart + `@[A-Za-z_][\w.]*`, Examples: []string{"@property", "  @app.route"}},
			{Type: token.Keyword, Pattern: words(wordChar, pythonKeywords), Examples: []string{"def", "None", "lambda", "x = -True"}},
			{Type: token.Function, Pattern: `(?<!\w)[A-Za-z_]\w*(?=\s*\()`, Examples: []string{"print(x)"}},
			{Type: token.Number, Pattern: `(?<![\w.])(?:0[xX][\da-fA-F_]+|0[bB][01_]+|0[oO][0-7_]+|\d[\d_]*(?:\.\d+)?(?:[eE][+-]?\d+)?j?)(?!\w)`, Examples: []string{"1_000", "0b101", "2.5e-3", "3j"}},
			{Type: token.Punctuation, Pattern: `[{}()\[\];,:]`, Examples: []string{"(", ":"}},
		},
	}
}

func propertiesDefinition() Definition {
	valueStart := `(?![ \t\n])(?<=[=:][ \t]*)`
	return Definition{
		Name:       "properties",
		Aliases:    []string{"ini", "env", "dotenv"},
		Extensions: []string{".properties", ".ini", ".env", ".cfg"},
		Rules: []Rule{
			{Type: token.Comment, Pattern: lineStart + `[#!;][^\n]*`, Examples: []string{"# c", "! c", "; c"}},
			{Type: token.Tag, Pattern: lineStart + `\[[^\[\]\n]*\]`, Examples: []string{"[section]"}},
			{Type: token.Property, Pattern: lineStart + `(?:\\.|[^\s#!;=:\\\[])(?>(?:\\.|[^\s=:\\]|[ \t]+(?=[^\s=:\\]|\\.))*)(?=[ \t]*[=:]|[ \t]*\r?(?:\n|\z))`, Examples: []string{"a.b=c", "key : value", `my\ key=v`}},
			{Type: token.Punctuation, Pattern: `[=:]`, Examples: []string{"a=b"}},
			{Type: token.Number, Pattern: valueStart + `-?\d+(?:\.\d+)?(?=[ \t]*(?:\n|\z))`, Examples: []string{"port=8080"}},
			{Type: token.Keyword, Pattern: valueStart + `(?i:true|false|yes|no|on|off)(?=[ \t]*(?:\n|\z))`, Examples: []string{"debug=true"}},
			{Type: token.String, Pattern: valueStart + `[^ \t\n](?:\\\n|[^\n])*`, Examples: []string{"name=John Doe", "url=http://a:b/c"}},
		},
	}
}

func logDefinition() Definition {
	return Definition{
		Name:       "log",
		Aliases:    []string{"logs", "console"},
		Extensions: []string{".log", ".out"},
		Rules: []Rule{
			{Type: token.Number, Pattern: `\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}(?:[.,]\d+)?(?:Z|[+-]\d{2}:?\d{2})?|(?<![\d:])\d{2}:\d{2}:\d{2}(?:[.,]\d+)?(?![\d:])`, Examples: []string{"2024-01-02 03:04:05,678 INFO", "12:00:01.5"}},
			{Type: token.Keyword, Pattern: `\b(?:TRACE|DEBUG|INFO|NOTICE|WARN|WARNING|ERROR|ERR|FATAL|SEVERE|CRITICAL|PANIC)\b`, Examples: []string{"ERROR", "WARN: disk low"}},
			{Type: token.Link, Pattern: `\b(?:https?|ftp|file)://[^\s"'<>)\]]+`, Examples: []string{"GET https://x.io/a"}},
			{Type: token.Tag, Pattern: `\[[^\[\]\n]*\]`, Examples: []string{"[main]"}},
			{Type: token.String, Pattern: `"[^"\n]*"`, Examples: []string{`msg="hi"`}},
			{Type: token.Annotation, Pattern: `(?<![\w$.])(?:[A-Za-z_$][\w$]*\.)*[A-Za-z_$][\w$]*(?:Exception|Error)\b`, Examples: []string{"java.lang.IllegalStateException: x", "TypeError: y"}},
			{Type: token.Function, Pattern: `(?=[\w$.<>])(?<=\bat\s+)[\w$.<>]+(?=\()`, Examples: []string{"    at com.acme.Foo.bar(Foo.java:10)"}},
			{Type: token.Number, Pattern: `\b\d+(?:\.\d+)*\b`, Examples: []string{"took 15 ms", "10.0.0.1"}},
		},
	}
}

// insertAfter returns rules with extra inserted after the last rule of type t.
func insertAfter(rules []Rule, t token.Type, extra ...Rule) []Rule {
	idx := len(rules)
	for i := len(rules) - 1; i >= 0; i-- {
		if rules[i].Type == t {
			idx = i + 1
			break
		}
	}
	out := make([]Rule, 0, len(rules)+len(extra))
	out = append(out, rules[:idx]...)
	out = append(out, extra...)
	return append(out, rules[idx:]...)
}

// DefaultDefinitions returns the built-in grammar definitions in registration order.
func DefaultDefinitions() []Definition {
	return []Definition{
		javascriptDefinition(),
		typescriptDefinition(),
		reactDefinition(),
		sqlDefinition(),
		jsonDefinition(),
		yamlDefinition(),
		markdownDefinition(),
		htmlDefinition(),
		xmlDefinition(),
		cssDefinition(),
		javaDefinition(),
		pythonDefinition(),
		propertiesDefinition(),
		logDefinition(),
	}
}

// NewBuiltinRegistry compiles the built-in grammars into a fresh registry.
func NewBuiltinRegistry(opts ...CompileOption) (*Registry, error) {
	defs := DefaultDefinitions()
	grammars := make([]*Grammar, len(defs))
	for i, def := range defs {
		g, err := Compile(def, opts...)
		if err != nil {
			return nil, err
		}
		grammars[i] = g
	}
	return NewRegistry(DefaultFallback, grammars...)
}

var builtin = sync.OnceValue(func() *Registry {
	// Built-in grammars should never be invalid, so we panic if they are.
	r, err := NewBuiltinRegistry()
	if err != nil {
		panic(fmt.Sprintf("Invalid built-in grammars: %v", err))
	}
	return r
})

// Builtin returns the registry of built-in grammars. It is built on first
// use and shared afterwards.
func Builtin() *Registry {
	return builtin()
}
