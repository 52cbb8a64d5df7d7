package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gridedit/internal/gridstate"
)

func TestParseSeed(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []gridstate.Record
		wantErr string
	}{
		{
			name: "explicit ids",
			input: `
- {id: 3, name: "Lê Văn C", age: 41}
- {id: 1, name: "Phạm Thị D", age: 19}
`,
			want: []gridstate.Record{{ID: 3, Name: "Lê Văn C", Age: 41}, {ID: 1, Name: "Phạm Thị D", Age: 19}},
		},
		{
			name: "missing ids are assigned after the largest",
			input: `
- {name: first, age: 1}
- {id: 5, name: second, age: 2}
- {name: third, age: 3}
`,
			want: []gridstate.Record{{ID: 6, Name: "first", Age: 1}, {ID: 5, Name: "second", Age: 2}, {ID: 7, Name: "third", Age: 3}},
		},
		{name: "empty", input: "", want: []gridstate.Record{}},
		{name: "duplicate id", input: "- {id: 1}\n- {id: 1}\n", wantErr: "already used"},
		{name: "non-positive id", input: "- {id: 0, name: x}\n", wantErr: "must be positive"},
		{name: "not a list", input: "name: x\n", wantErr: "parse seed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSeed([]byte(tt.input))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d records, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("record %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLoadInitialStateDefault(t *testing.T) {
	state, err := loadInitialState(context.Background(), "", &Config{})
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Records) != 2 || state.Records[0].Name != "Nguyễn Văn A" {
		t.Errorf("unexpected default records %+v", state.Records)
	}
	if _, ok := state.Selected(); ok {
		t.Error("initial state should have no selection")
	}
}

func TestLoadInitialStateSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte("- {id: 10, name: Z, age: 99}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	state, err := loadInitialState(context.Background(), path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(state.Records) != 1 || state.Records[0].ID != 10 {
		t.Errorf("unexpected records %+v", state.Records)
	}

	if _, err := loadInitialState(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"), nil); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing seed file err = %v, want os.ErrNotExist", err)
	}
}
