package dsl

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/blocktext/field"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+)`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[:;{}]`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "HashComment"),
	)
)

// Document is the root AST node for a block definition file.
type Document struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Blocks []*BlockDef    `parser:"Newline* ( @@ Newline* )*"`
}

// BlockDef declares one block shape and the fields it carries.
type BlockDef struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Name   string         `parser:"'block' @Ident"`
	Fields []*FieldDef    `parser:"'{' Newline* ( @@ Newline* )* '}'"`
}

// FieldDef declares a field instance: registered type tag, field name and
// an optional options block of key/value assignments.
type FieldDef struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Type    string         `parser:"'field' @Ident"`
	Name    string         `parser:"@Ident"`
	Entries []*Assignment  `parser:"( '{' Newline* ( @@ ( ';' | Newline )* )* '}' )?"`
}

// Assignment uses colon syntax (key: value).
type Assignment struct {
	Key   string `parser:"@Ident ':'"`
	Value *Value `parser:"@@"`
}

// Value is a scalar option value: string, number or boolean.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *float64       `parser:"| @Number"`
	Bool   *Boolean       `parser:"| @('true'|'false')"`
}

// Interface returns the value as a plain Go scalar for JSON lowering.
func (v *Value) Interface() any {
	switch {
	case v == nil:
		return nil
	case v.String != nil:
		return string(*v.String)
	case v.Number != nil:
		return *v.Number
	case v.Bool != nil:
		return bool(*v.Bool)
	default:
		return nil
	}
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Boolean captures 'true'/'false' idents.
type Boolean bool

// Capture implements participle.Capture.
func (b *Boolean) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("boolean capture requires value")
	}
	*b = values[0] == "true"
	return nil
}

// Options lowers the field's option assignments into the shared JSON
// options record, so DSL input goes through the same tolerant parsing
// (including the maxLineChars fallback) as host-supplied records.
func (f *FieldDef) Options() (field.Options, error) {
	record := make(map[string]any, len(f.Entries))
	for _, entry := range f.Entries {
		record[entry.Key] = entry.Value.Interface()
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return field.Options{}, fmt.Errorf("dsl: 序列化字段 %s 的选项失败: %w", f.Name, err)
	}
	opts, err := field.ParseOptions(raw)
	if err != nil {
		return field.Options{}, fmt.Errorf("dsl: 字段 %s 的选项非法: %w", f.Name, err)
	}
	return opts, nil
}

// Parse parses block definitions from an io.Reader.
func Parse(r io.Reader) (*Document, error) {
	return documentParser.Parse("", r)
}

// ParseString parses block definitions from a string.
func ParseString(input string) (*Document, error) {
	return documentParser.ParseString("", input)
}
