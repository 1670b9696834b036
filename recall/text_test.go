package recall

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "lowercase and split",
			in:   "Red Shoe",
			want: []string{"red", "shoe"},
		},
		{
			name: "punctuation removed",
			in:   "Nike, Air-Max! (2024)",
			want: []string{"nike", "air", "max", "2024"},
		},
		{
			name: "whitespace collapsed",
			in:   "  red \t shoe \n ",
			want: []string{"red", "shoe"},
		},
		{
			name: "underscore kept",
			in:   "limited_edition shoe",
			want: []string{"limited_edition", "shoe"},
		},
		{
			name: "punctuation only",
			in:   "!!! ... ???",
			want: nil,
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestProductDocument(t *testing.T) {
	got := ProductDocument("Red Shoe", []string{"Shoes", "Sport"})
	want := []string{"red", "shoe", "shoes", "sport"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ProductDocument() = %v, want %v", got, want)
	}

	// 没有类目时只用标题
	got = ProductDocument("Red Shoe", nil)
	want = []string{"red", "shoe"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ProductDocument() without categories = %v, want %v", got, want)
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	in := "Red Shoe, Limited-Edition 2024!"
	first := Normalize(in)
	for i := 0; i < 10; i++ {
		if !reflect.DeepEqual(Normalize(in), first) {
			t.Fatal("Normalize must be deterministic")
		}
	}
}
