package storage

import (
	"strings"
	"testing"
)

func TestCodecByName(t *testing.T) {
	for _, name := range []string{"", "json", "yaml", "yml"} {
		if _, err := CodecByName(name); err != nil {
			t.Errorf("CodecByName(%q) failed: %v", name, err)
		}
	}

	_, err := CodecByName("xml")
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("expected unknown format error, got %v", err)
	}
}

func TestYAMLCodec_EmptyCollection(t *testing.T) {
	c := YAMLCodec{}
	data, err := c.Encode(nil)
	if err != nil {
		t.Fatal(err)
	}
	notes, err := c.Decode(data)
	if err != nil {
		t.Fatalf("decode %q: %v", data, err)
	}
	if len(notes) != 0 {
		t.Errorf("expected empty collection, got %d notes", len(notes))
	}
}

func TestJSONCodec_Null(t *testing.T) {
	notes, err := JSONCodec{}.Decode([]byte("null"))
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 0 {
		t.Errorf("expected empty collection, got %d", len(notes))
	}
}
