package core

import (
	"reflect"
	"testing"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Hello World  ", "hello world"},
		{"ALREADY", "already"},
		{"\tmixed Case\n", "mixed case"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeText(tt.in); got != tt.want {
			t.Errorf("NormalizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "stop words removed",
			in:   "the quick brown fox",
			want: []string{"quick", "brown", "fox"},
		},
		{
			name: "punctuation trimmed and lowercased",
			in:   "Hello, World! (really)",
			want: []string{"hello", "world", "really"},
		},
		{
			name: "only stop words",
			in:   "the a an",
			want: []string{},
		},
		{
			name: "empty input",
			in:   "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokenSet(t *testing.T) {
	set := TokenSet("fusion ranking fusion")
	if len(set) != 2 {
		t.Errorf("TokenSet() size = %d, want 2", len(set))
	}
	if !set["fusion"] || !set["ranking"] {
		t.Errorf("TokenSet() missing expected tokens: %v", set)
	}
}
