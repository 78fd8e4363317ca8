package compat

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseExecutable(t *testing.T) {
	tests := []struct {
		token    string
		expected Executable
	}{
		{"doom1.9", Doom1_9},
		{"limitremoving", LimitRemoving},
		{"bugfixed", Bugfixed},
		{"boom2.02", Boom2_02},
		{"complevel9", CompLevel9},
		{"mbf", MBF},
		{"mbf21", MBF21},
		{"mbf21ex", MBF21EX},
		{"id24", ID24},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseExecutable(tt.token)
			if err != nil {
				t.Fatalf("ParseExecutable(%q): %v", tt.token, err)
			}
			if got != tt.expected {
				t.Errorf("ParseExecutable(%q) = %v, expected %v", tt.token, got, tt.expected)
			}
			if got.String() != tt.token {
				t.Errorf("String() = %q, expected %q", got.String(), tt.token)
			}
		})
	}
}

func TestParseExecutable_Unknown(t *testing.T) {
	for _, token := range []string{"", "doom", "Doom1.9", "MBF21", "boom2.03"} {
		if _, err := ParseExecutable(token); !errors.Is(err, ErrUnknownTier) {
			t.Errorf("ParseExecutable(%q): expected ErrUnknownTier, got %v", token, err)
		}
	}
}

func TestExecutableOrdering(t *testing.T) {
	tiers := Executables()
	if len(tiers) != 9 {
		t.Fatalf("expected 9 tiers, got %d", len(tiers))
	}
	for i := 1; i < len(tiers); i++ {
		if !tiers[i].Supports(tiers[i-1]) {
			t.Errorf("%v should support %v", tiers[i], tiers[i-1])
		}
		if tiers[i-1].Supports(tiers[i]) {
			t.Errorf("%v should not support %v", tiers[i-1], tiers[i])
		}
	}
	if !MBF.Supports(MBF) {
		t.Error("a tier supports itself")
	}
}

func TestExecutableJSON(t *testing.T) {
	var doc struct {
		Executable *Executable `json:"executable"`
	}

	if err := json.Unmarshal([]byte(`{"executable":"boom2.02"}`), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Executable == nil || *doc.Executable != Boom2_02 {
		t.Fatalf("expected boom2.02, got %v", doc.Executable)
	}

	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"executable":"boom2.02"}` {
		t.Errorf("unexpected JSON %s", out)
	}

	if err := json.Unmarshal([]byte(`{"executable":"zdoom"}`), &doc); !errors.Is(err, ErrUnknownTier) {
		t.Errorf("expected ErrUnknownTier, got %v", err)
	}

	if _, err := Executable(42).MarshalText(); !errors.Is(err, ErrUnknownTier) {
		t.Errorf("expected ErrUnknownTier for out-of-range tier, got %v", err)
	}
}
