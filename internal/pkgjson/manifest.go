package pkgjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/afero"
)

// FileName is the manifest file name inside a project root.
const FileName = "package.json"

// Top-level keys the composer touches.
const (
	keyName            = "name"
	keyScripts         = "scripts"
	keyDevDependencies = "devDependencies"
)

// Manifest is a package.json document. Only the top level is decoded; every
// value is kept as raw JSON so unknown keys round-trip unchanged.
type Manifest struct {
	keys   []string
	fields map[string]json.RawMessage
}

// Parse decodes a package.json document.
func Parse(data []byte) (*Manifest, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	m := &Manifest{fields: make(map[string]json.RawMessage)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("value of %q: %w", key, err)
		}
		m.set(key, raw)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level object")
	}
	return m, nil
}

// ReadFile reads and parses the manifest at path.
func ReadFile(fsys afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return m, nil
}

// WriteFile serializes m to path, replacing any existing file.
func WriteFile(fsys afero.Fs, path string, m *Manifest) error {
	data, err := m.Marshal()
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := afero.WriteFile(fsys, path, data, 0644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

// Keys returns the top-level keys in document order.
func (m *Manifest) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Raw returns the undecoded value stored under key.
func (m *Manifest) Raw(key string) (json.RawMessage, bool) {
	v, ok := m.fields[key]
	return v, ok
}

// Name returns the manifest's "name" field, or "" when absent or not a string.
func (m *Manifest) Name() string {
	var name string
	if raw, ok := m.fields[keyName]; ok {
		_ = json.Unmarshal(raw, &name)
	}
	return name
}

// SetName replaces the "name" field, adding it first when missing.
func (m *Manifest) SetName(name string) error {
	var buf bytes.Buffer
	if err := writeString(&buf, name); err != nil {
		return err
	}
	if _, ok := m.fields[keyName]; !ok {
		m.keys = append([]string{keyName}, m.keys...)
	}
	m.fields[keyName] = buf.Bytes()
	return nil
}

// Fragment decodes the manifest's scripts and devDependencies. Missing maps
// decode as empty.
func (m *Manifest) Fragment() (Fragment, error) {
	scripts, err := m.stringMap(keyScripts)
	if err != nil {
		return Fragment{}, err
	}
	devDeps, err := m.stringMap(keyDevDependencies)
	if err != nil {
		return Fragment{}, err
	}
	return Fragment{Scripts: scripts, DevDependencies: devDeps}, nil
}

// Marshal encodes the manifest with two-space indentation and a trailing newline.
func (m *Manifest) Marshal() ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			compact.WriteByte(',')
		}
		if err := writeString(&compact, k); err != nil {
			return nil, err
		}
		compact.WriteByte(':')
		compact.Write(m.fields[k])
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func (m *Manifest) clone() *Manifest {
	out := &Manifest{
		keys:   m.Keys(),
		fields: make(map[string]json.RawMessage, len(m.fields)),
	}
	for k, v := range m.fields {
		out.fields[k] = v
	}
	return out
}

func (m *Manifest) set(key string, raw json.RawMessage) {
	if _, ok := m.fields[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.fields[key] = raw
}

func (m *Manifest) stringMap(key string) (*OrderedMap, error) {
	raw, ok := m.fields[key]
	if !ok || string(raw) == "null" {
		return NewOrderedMap(), nil
	}
	out := NewOrderedMap()
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("decoding %q: %w", key, err)
	}
	return out, nil
}
