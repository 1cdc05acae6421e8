package path

import "testing"

func TestParseArrayPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{"simple", `["project", "name"]`, []string{"project", "name"}, false},
		{"with index", `["project", "authors", "0"]`, []string{"project", "authors", "0"}, false},
		{"empty", `[]`, []string{}, false},
		{"not an array", `"project"`, nil, true},
		{"invalid json", `[project]`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArrayPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseArrayPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			segs := got.Segments()
			if len(segs) != len(tt.want) {
				t.Fatalf("Segments() = %v, want %v", segs, tt.want)
			}
			for i := range segs {
				if segs[i] != tt.want[i] {
					t.Fatalf("Segments() = %v, want %v", segs, tt.want)
				}
			}
		})
	}
}

func TestArrayPath_String(t *testing.T) {
	p := NewArrayPath([]string{"a", "0"})
	if got := p.String(); got != `["a","0"]` {
		t.Errorf("String() = %q", got)
	}
}
