package utils

import "testing"

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"1", 1, false},
		{"999", 999, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseID(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseID(%q) = %d, %v", tt.in, got, err)
		}
	}
}

func TestParseOptionalID(t *testing.T) {
	if id, err := ParseOptionalID(""); id != nil || err != nil {
		t.Errorf("ParseOptionalID(\"\") = %v, %v", id, err)
	}
	if id, err := ParseOptionalID("5"); err != nil || id == nil || *id != 5 {
		t.Errorf("ParseOptionalID(\"5\") = %v, %v", id, err)
	}
	if _, err := ParseOptionalID("x"); err == nil {
		t.Error("ParseOptionalID(\"x\") should fail")
	}
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name         string
		number, size int
		want         Page
		offset       int
	}{
		{name: "defaults", number: 0, size: 0, want: Page{Number: 1, Size: 10}, offset: 0},
		{name: "third page", number: 3, size: 10, want: Page{Number: 3, Size: 10}, offset: 20},
		{name: "size capped", number: 2, size: 500, want: Page{Number: 2, Size: 100}, offset: 100},
		{name: "negative page", number: -4, size: 5, want: Page{Number: 1, Size: 5}, offset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePage(tt.number, tt.size, 10, 100)
			if got != tt.want {
				t.Errorf("NormalizePage(%d, %d) = %+v, want %+v", tt.number, tt.size, got, tt.want)
			}
			if off := got.Offset(); off != tt.offset {
				t.Errorf("Offset() = %d, want %d", off, tt.offset)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	p := Page{Number: 1, Size: 10}
	for total, want := range map[int64]int{0: 0, 1: 1, 10: 1, 21: 3} {
		if got := p.TotalPages(total); got != want {
			t.Errorf("TotalPages(%d) = %d, want %d", total, got, want)
		}
	}
	if got := (Page{}).TotalPages(5); got != 0 {
		t.Errorf("zero size TotalPages = %d, want 0", got)
	}
}
