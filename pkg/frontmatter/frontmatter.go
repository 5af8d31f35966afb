package frontmatter

import (
	"regexp"
	"slices"
	"strings"
)

const delimiter = "---"

// keyOrder is the order in which well-known keys are written. Any other keys
// follow in insertion order.
var keyOrder = []string{"name", "description", "version", "tags", "created", "updated"}

var nameLine = regexp.MustCompile(`(?m)^name:\s*(.+)$`)

// Value is a header value: either a single string or a list of strings.
type Value struct {
	Str    string
	List   []string
	IsList bool
}

// Text returns a string value.
func Text(s string) Value {
	return Value{Str: s}
}

// List returns a list value. A nil list becomes an empty one.
func List(items ...string) Value {
	if items == nil {
		items = []string{}
	}
	return Value{List: items, IsList: true}
}

// String renders the value the way it appears after "key: ".
func (v Value) String() string {
	if v.IsList {
		return "[" + strings.Join(v.List, ", ") + "]"
	}
	return v.Str
}

// Meta is an ordered set of header fields. The zero value is ready to use.
type Meta struct {
	keys   []string
	values map[string]Value
}

// Set stores v under key, keeping the key's original position when it is
// already present.
func (m *Meta) Set(key string, v Value) {
	if m.values == nil {
		m.values = make(map[string]Value)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value stored under key.
func (m *Meta) Get(key string) (Value, bool) {
	if m == nil || m.values == nil {
		return Value{}, false
	}
	v, ok := m.values[key]
	return v, ok
}

// String returns the string stored under key, or "" when absent. Lists are
// rendered in their bracketed form.
func (m *Meta) String(key string) string {
	v, ok := m.Get(key)
	if !ok {
		return ""
	}
	return v.String()
}

// Strings returns the list stored under key. A plain string value is
// returned as a single-element list; an absent key yields nil.
func (m *Meta) Strings(key string) []string {
	v, ok := m.Get(key)
	if !ok {
		return nil
	}
	if v.IsList {
		return slices.Clone(v.List)
	}
	if v.Str == "" {
		return []string{}
	}
	return []string{v.Str}
}

// Keys returns the keys in insertion order.
func (m *Meta) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// Len returns the number of fields.
func (m *Meta) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Parse splits content into its header and body.
//
// When content does not open with a delimited header, the returned Meta is
// empty and the whole content is the body. Parse never fails: lines without a
// colon or with an empty key are ignored.
func Parse(content string) (*Meta, string) {
	meta := &Meta{}

	first, rest, ok := strings.Cut(content, "\n")
	if !ok || strings.TrimSuffix(first, "\r") != delimiter {
		return meta, content
	}

	var block []string
	for {
		line, after, more := strings.Cut(rest, "\n")
		if strings.TrimSuffix(line, "\r") == delimiter {
			for _, l := range block {
				parseLine(meta, l)
			}
			if !more {
				return meta, ""
			}
			return meta, after
		}
		if !more {
			// no closing delimiter
			return &Meta{}, content
		}
		block = append(block, strings.TrimSuffix(line, "\r"))
		rest = after
	}
}

func parseLine(meta *Meta, line string) {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	value = strings.TrimSpace(value)

	if strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") {
		inner := strings.TrimSpace(value[1 : len(value)-1])
		if inner == "" {
			meta.Set(key, List())
			return
		}
		parts := strings.Split(inner, ",")
		items := make([]string, 0, len(parts))
		for _, p := range parts {
			items = append(items, strings.TrimSpace(p))
		}
		meta.Set(key, List(items...))
		return
	}
	meta.Set(key, Text(value))
}

// Format renders meta and body as a SKILL.md document. Well-known keys come
// first in a fixed order; the body follows the closing delimiter verbatim.
func Format(meta *Meta, body string) string {
	var b strings.Builder
	b.WriteString(delimiter + "\n")

	write := func(key string) {
		v, _ := meta.Get(key)
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(v.String())
		b.WriteString("\n")
	}

	for _, key := range keyOrder {
		if _, ok := meta.Get(key); ok {
			write(key)
		}
	}
	for _, key := range meta.Keys() {
		if !slices.Contains(keyOrder, key) {
			write(key)
		}
	}

	b.WriteString(delimiter + "\n")
	b.WriteString(body)
	return b.String()
}

// NameField returns the value of the first "name:" line in content, or "" if
// there is none. It does not require a well-formed header.
func NameField(content string) string {
	m := nameLine.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
