package promptbuild

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotObject reports that the wire value for inputs was not a JSON object.
var ErrNotObject = errors.New("inputs must be an object")

// Inputs is the user input mapping with insertion order preserved. Plain
// maps lose key order across a JSON round trip, and the prompt serialization
// is specified to follow the order the caller sent.
type Inputs struct {
	keys []string
	vals map[string]any
}

func NewInputs() *Inputs {
	return &Inputs{vals: map[string]any{}}
}

func (in *Inputs) Len() int {
	if in == nil {
		return 0
	}
	return len(in.keys)
}

func (in *Inputs) Keys() []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in.keys))
	copy(out, in.keys)
	return out
}

func (in *Inputs) Get(name string) (any, bool) {
	if in == nil || in.vals == nil {
		return nil, false
	}
	v, ok := in.vals[name]
	return v, ok
}

// Set stores a value, appending the key on first sight.
func (in *Inputs) Set(name string, v any) {
	if in.vals == nil {
		in.vals = map[string]any{}
	}
	if _, ok := in.vals[name]; !ok {
		in.keys = append(in.keys, name)
	}
	in.vals[name] = v
}

// Delete removes a key and returns its former value.
func (in *Inputs) Delete(name string) (any, bool) {
	if in == nil || in.vals == nil {
		return nil, false
	}
	v, ok := in.vals[name]
	if !ok {
		return nil, false
	}
	delete(in.vals, name)
	for i, k := range in.keys {
		if k == name {
			in.keys = append(in.keys[:i], in.keys[i+1:]...)
			break
		}
	}
	return v, true
}

func (in *Inputs) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return ErrNotObject
	}

	in.keys = nil
	in.vals = map[string]any{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected key token %v", keyTok)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return err
		}
		in.Set(key, v)
	}
	_, err = dec.Token() // closing brace
	return err
}

func (in *Inputs) MarshalJSON() ([]byte, error) {
	if in == nil || len(in.keys) == 0 {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range in.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(in.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
