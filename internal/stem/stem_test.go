package stem

import (
	"reflect"
	"testing"
)

func TestStemLine(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"running", "run"},
		{"Running quickly", "run quickli"},
		{"the cats, the dogs.", "the cat the dog"},
		{"  trimmed  ", "trim"},
	}

	for _, tt := range tests {
		if got := StemLine(tt.in); got != tt.want {
			t.Errorf("StemLine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStemLineWords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"Hello, World!", []string{"hello", "world"}},
		{"running dogs", []string{"run", "dog"}},
		{"?!", []string{}},
	}

	for _, tt := range tests {
		if got := StemLineWords(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("StemLineWords(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func BenchmarkStemLine(b *testing.B) {
	line := "so in this video we are going to be looking at how transcripts are fetched and archived"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		StemLine(line)
	}
}
