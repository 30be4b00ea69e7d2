package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/jotter/pkg/core"
)

// Codec converts a whole note collection to bytes and back.
type Codec interface {
	// Name identifies the codec in configuration ("json", "yaml").
	Name() string
	Encode(notes []core.Note) ([]byte, error)
	Decode(data []byte) ([]core.Note, error)
}

// record is the stored shape of a note. Field names follow the layout the
// browser version of the app kept in localStorage.
type record struct {
	ID      string    `json:"id" yaml:"id"`
	Title   string    `json:"title,omitempty" yaml:"title,omitempty"`
	Content string    `json:"content" yaml:"content"`
	Date    time.Time `json:"date" yaml:"date"`
}

func toRecords(notes []core.Note) []record {
	out := make([]record, len(notes))
	for i, n := range notes {
		out[i] = record{ID: n.ID, Title: n.Title, Content: n.Content, Date: n.Date}
	}
	return out
}

// fromRecords converts records back to notes, rejecting collections that
// break the ID invariants.
func fromRecords(recs []record) ([]core.Note, error) {
	notes := make([]core.Note, 0, len(recs))
	seen := make(map[string]bool, len(recs))
	for i, r := range recs {
		if r.ID == "" {
			return nil, fmt.Errorf("note at index %d has no id", i)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("duplicate note id %q", r.ID)
		}
		seen[r.ID] = true
		notes = append(notes, core.Note{ID: r.ID, Title: r.Title, Content: r.Content, Date: r.Date})
	}
	return notes, nil
}

// DefaultCodecs returns the codecs selectable by name.
func DefaultCodecs() map[string]Codec {
	return map[string]Codec{
		"json": JSONCodec{},
		"yaml": YAMLCodec{},
		"yml":  YAMLCodec{},
	}
}

// CodecByName looks up one of the DefaultCodecs.
func CodecByName(name string) (Codec, error) {
	if name == "" {
		return JSONCodec{}, nil
	}
	codecs := DefaultCodecs()
	if c, ok := codecs[name]; ok {
		return c, nil
	}
	names := make([]string, 0, len(codecs))
	for n := range codecs {
		names = append(names, n)
	}
	sort.Strings(names)
	return nil, fmt.Errorf("unknown format %q (available: %v)", name, names)
}

// --- JSON Codec ---

// JSONCodec stores the collection as a compact JSON array.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Encode(notes []core.Note) ([]byte, error) {
	return json.Marshal(toRecords(notes))
}

func (JSONCodec) Decode(data []byte) ([]core.Note, error) {
	var recs []record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return fromRecords(recs)
}

// --- YAML Codec ---

// YAMLCodec stores the collection as a YAML sequence, convenient for stores
// that are edited by hand.
type YAMLCodec struct{}

func (YAMLCodec) Name() string { return "yaml" }

func (YAMLCodec) Encode(notes []core.Note) ([]byte, error) {
	if len(notes) == 0 {
		return []byte("[]\n"), nil
	}
	return yaml.Marshal(toRecords(notes))
}

func (YAMLCodec) Decode(data []byte) ([]core.Note, error) {
	var recs []record
	if err := yaml.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return fromRecords(recs)
}
