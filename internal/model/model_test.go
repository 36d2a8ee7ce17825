package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestOutcome_Saved(t *testing.T) {
	out := Saved("/downloads/file.pdf")

	if !out.OK() {
		t.Error("Saved outcome should report OK")
	}
	if out.Path() != "/downloads/file.pdf" {
		t.Errorf("Path() = %q, want %q", out.Path(), "/downloads/file.pdf")
	}
	if out.Err() != nil {
		t.Errorf("Err() = %v, want nil", out.Err())
	}
}

func TestOutcome_Failed(t *testing.T) {
	cause := errors.New("connection refused")
	out := Failed(cause)

	if out.OK() {
		t.Error("Failed outcome should not report OK")
	}
	if out.Path() != "" {
		t.Errorf("Path() = %q, want empty", out.Path())
	}
	if !errors.Is(out.Err(), cause) {
		t.Errorf("Err() = %v, want %v", out.Err(), cause)
	}
}

func TestOutcome_MarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		want    string
	}{
		{"success", Saved("out/a.txt"), `"out/a.txt"`},
		{"failure", Failed(errors.New("boom")), `{"error":"boom"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.outcome)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal() = %s, want %s", got, tt.want)
			}
		})
	}
}
