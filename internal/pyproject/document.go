package pyproject

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2/unstable"
)

// FileName is the manifest file read by Poetry.
const FileName = "pyproject.toml"

// ErrParse is returned when a manifest is not valid TOML.
var ErrParse = errors.New("invalid pyproject.toml")

// ValueKind tells which shape a document value has.
type ValueKind int

const (
	// KindOther covers every value the updater never inspects (numbers, arrays, dates, ...).
	KindOther ValueKind = iota
	// KindString is a basic, literal or multi-line string.
	KindString
	// KindTable is a standard table, a dotted-key table or an inline table.
	KindTable
)

type span struct {
	offset int
	length int
}

// Value is a node of the document tree. Tables keep their keys in declaration
// order and with their original casing.
type Value struct {
	Kind ValueKind
	// Str holds the decoded content of a KindString value.
	Str string

	raw   span
	keys  []string
	items map[string]*Value
}

func newTable() *Value {
	return &Value{Kind: KindTable, items: make(map[string]*Value)}
}

// Keys returns the keys of a table in declaration order.
func (v *Value) Keys() []string {
	if v == nil || v.Kind != KindTable {
		return nil
	}
	return append([]string(nil), v.keys...)
}

// Get returns the child stored under key (exact match).
func (v *Value) Get(key string) (*Value, bool) {
	if v == nil || v.Kind != KindTable {
		return nil, false
	}
	child, ok := v.items[key]
	return child, ok
}

// Lookup walks a key path from v.
func (v *Value) Lookup(path ...string) (*Value, bool) {
	current := v
	for _, key := range path {
		next, ok := current.Get(key)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// String returns the string stored under key, if it is one.
func (v *Value) String(key string) (string, bool) {
	child, ok := v.Get(key)
	if !ok || child.Kind != KindString {
		return "", false
	}
	return child.Str, true
}

func (v *Value) descend(path []string) (*Value, error) {
	current := v
	for _, key := range path {
		child, ok := current.items[key]
		if !ok {
			child = newTable()
			current.set(key, child)
		}
		if child.Kind != KindTable {
			return nil, fmt.Errorf("key %q is already defined as a value", key)
		}
		current = child
	}
	return current, nil
}

func (v *Value) set(key string, child *Value) {
	if _, exists := v.items[key]; !exists {
		v.keys = append(v.keys, key)
	}
	v.items[key] = child
}

// Document is a lossless view of a manifest: the original bytes plus a tree
// locating every string token, so single values can be replaced without
// re-serializing anything else.
type Document struct {
	src   []byte
	root  *Value
	edits map[int]edit
}

type edit struct {
	raw  span
	text string
}

// Parse builds a Document from manifest bytes.
func Parse(data []byte) (*Document, error) {
	doc := &Document{
		src:   data,
		root:  newTable(),
		edits: make(map[int]edit),
	}

	parser := unstable.Parser{}
	parser.Reset(data)

	current := doc.root
	for parser.NextExpression() {
		expr := parser.Expression()
		switch expr.Kind {
		case unstable.Table:
			table, err := doc.root.descend(keyParts(expr.Key()))
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrParse, err)
			}
			current = table
		case unstable.ArrayTable:
			// array-of-tables entries never hold dependency declarations
			current = newTable()
		case unstable.KeyValue:
			if err := doc.assign(current, keyParts(expr.Key()), expr.Value()); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrParse, err)
			}
		}
	}
	if err := parser.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	return doc, nil
}

func keyParts(it unstable.Iterator) []string {
	var parts []string
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}

func (d *Document) assign(table *Value, path []string, node *unstable.Node) error {
	if len(path) == 0 {
		return errors.New("empty key")
	}
	parent, err := table.descend(path[:len(path)-1])
	if err != nil {
		return err
	}
	key := path[len(path)-1]
	if _, exists := parent.items[key]; exists {
		return fmt.Errorf("duplicate key %q", strings.Join(path, "."))
	}
	value, err := d.convert(node)
	if err != nil {
		return err
	}
	parent.set(key, value)
	return nil
}

func (d *Document) convert(node *unstable.Node) (*Value, error) {
	switch node.Kind {
	case unstable.String:
		raw := span{offset: int(node.Raw.Offset), length: int(node.Raw.Length)}
		if !d.isStringToken(raw) {
			return nil, fmt.Errorf("cannot locate string token %q", node.Data)
		}
		return &Value{Kind: KindString, Str: string(node.Data), raw: raw}, nil
	case unstable.InlineTable:
		table := newTable()
		children := node.Children()
		for children.Next() {
			kv := children.Node()
			if err := d.assign(table, keyParts(kv.Key()), kv.Value()); err != nil {
				return nil, err
			}
		}
		return table, nil
	default:
		return &Value{Kind: KindOther}, nil
	}
}

func (d *Document) isStringToken(raw span) bool {
	if raw.length < 2 || raw.offset < 0 || raw.offset+raw.length > len(d.src) {
		return false
	}
	first := d.src[raw.offset]
	last := d.src[raw.offset+raw.length-1]
	return (first == '"' || first == '\'') && first == last
}

// Root returns the top-level table.
func (d *Document) Root() *Value {
	return d.root
}

// SetString replaces the value of a string node, keeping its quoting style.
func (d *Document) SetString(v *Value, s string) error {
	if v == nil || v.Kind != KindString {
		return errors.New("value is not a string")
	}
	if v.Str == s {
		return nil
	}
	original := d.src[v.raw.offset : v.raw.offset+v.raw.length]
	d.edits[v.raw.offset] = edit{raw: v.raw, text: requote(original, s)}
	v.Str = s
	return nil
}

// Changed reports whether any value was replaced.
func (d *Document) Changed() bool {
	return len(d.edits) > 0
}

// Bytes renders the document: the original input with replaced tokens spliced in.
func (d *Document) Bytes() []byte {
	if len(d.edits) == 0 {
		return append([]byte(nil), d.src...)
	}

	offsets := make([]int, 0, len(d.edits))
	for offset := range d.edits {
		offsets = append(offsets, offset)
	}
	sort.Ints(offsets)

	var buf bytes.Buffer
	buf.Grow(len(d.src))
	last := 0
	for _, offset := range offsets {
		e := d.edits[offset]
		buf.Write(d.src[last:e.raw.offset])
		buf.WriteString(e.text)
		last = e.raw.offset + e.raw.length
	}
	buf.Write(d.src[last:])
	return buf.Bytes()
}

func requote(original []byte, s string) string {
	switch {
	case bytes.HasPrefix(original, []byte(`'''`)) && !strings.Contains(s, `'''`):
		return `'''` + s + `'''`
	case bytes.HasPrefix(original, []byte(`"""`)):
		return `"""` + escapeBasic(s) + `"""`
	case original[0] == '\'' && !strings.ContainsAny(s, "'\r\n"):
		return "'" + s + "'"
	default:
		return `"` + escapeBasic(s) + `"`
	}
}

var basicEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\b", `\b`,
	"\t", `\t`,
	"\n", `\n`,
	"\f", `\f`,
	"\r", `\r`,
)

func escapeBasic(s string) string {
	return basicEscaper.Replace(s)
}
