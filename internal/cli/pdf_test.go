package cli

import (
	"reflect"
	"testing"
)

func TestParsePages(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"", nil, false},
		{"1", []int{1}, false},
		{"1,3,5", []int{1, 3, 5}, false},
		{"2-4", []int{2, 3, 4}, false},
		{"1, 3-5 ,8", []int{1, 3, 4, 5, 8}, false},
		{"abc", nil, true},
		{"3-1", nil, true},
		{"1,-", nil, true},
	}
	for _, tt := range tests {
		got, err := parsePages(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parsePages(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parsePages(%q): %v", tt.in, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parsePages(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
