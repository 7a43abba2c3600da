package qdrant

import (
	"testing"

	"github.com/qdrant/go-client/qdrant"
)

func TestParseQdrantAddress(t *testing.T) {
	tests := []struct {
		in       string
		wantHost string
		wantPort int
		wantErr  bool
	}{
		{"", "localhost", 6334, false},
		{"   ", "localhost", 6334, false},
		{"qdrant.internal", "qdrant.internal", 6334, false},
		{"qdrant.internal:7000", "qdrant.internal", 7000, false},
		{"http://qdrant.internal:6334", "qdrant.internal", 6334, false},
		{"grpc://10.0.0.5", "10.0.0.5", 6334, false},
		{"host:notaport", "", 0, true},
	}

	for _, tt := range tests {
		host, port, err := parseQdrantAddress(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseQdrantAddress(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseQdrantAddress(%q): %v", tt.in, err)
			continue
		}
		if host != tt.wantHost || port != tt.wantPort {
			t.Errorf("parseQdrantAddress(%q) = %s:%d, want %s:%d", tt.in, host, port, tt.wantHost, tt.wantPort)
		}
	}
}

func TestPayloadRoundTrip(t *testing.T) {
	in := map[string]interface{}{
		"file_path":  "/src/lib.rs",
		"start_line": 3,
		"score":      0.75,
		"public":     true,
		"modifiers":  []string{"native", "entry"},
	}

	payload := MapToPayload(in)
	out := PayloadToMap(payload)

	if out["file_path"] != "/src/lib.rs" {
		t.Errorf("file_path = %v", out["file_path"])
	}
	// Integers come back as int64 from the wire representation.
	if out["start_line"] != int64(3) {
		t.Errorf("start_line = %v (%T)", out["start_line"], out["start_line"])
	}
	if out["score"] != 0.75 {
		t.Errorf("score = %v", out["score"])
	}
	if out["public"] != true {
		t.Errorf("public = %v", out["public"])
	}
	modifiers, ok := out["modifiers"].([]interface{})
	if !ok {
		t.Fatalf("modifiers = %v (%T), want list", out["modifiers"], out["modifiers"])
	}
	if len(modifiers) != 2 || modifiers[0] != "native" || modifiers[1] != "entry" {
		t.Errorf("modifiers = %v", modifiers)
	}
}

func TestPayloadRoundTripEmptyList(t *testing.T) {
	out := PayloadToMap(MapToPayload(map[string]interface{}{
		"modifiers": []string{},
	}))
	modifiers, ok := out["modifiers"].([]interface{})
	if !ok {
		t.Fatalf("modifiers = %v (%T), want list", out["modifiers"], out["modifiers"])
	}
	if len(modifiers) != 0 {
		t.Errorf("modifiers = %v, want empty list", modifiers)
	}
}

func TestValueToInterfaceNil(t *testing.T) {
	if got := valueToInterface(nil); got != nil {
		t.Errorf("valueToInterface(nil) = %v, want nil", got)
	}
	var empty qdrant.Value
	if got := valueToInterface(&empty); got == nil {
		t.Errorf("Unset kind should fall back to a string rendering")
	}
}
