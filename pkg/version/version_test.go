package version

import (
	"testing"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  Version
	}{
		{"1.0.0", Version{1, 0, 0}},
		{"1.1", Version{1, 1, 0}},
		{"2.0.7", Version{2, 0, 7}},
		{"10.23.4", Version{10, 23, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if v != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, v, tt.want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		"",
		"1",
		"abc",
		"1.0.0.0",
		"1.x",
		"-1.0",
		"1..0",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if err == nil {
				t.Errorf("Parse(%q) should return error", input)
			}
		})
	}
}

func TestVersion_String(t *testing.T) {
	v := MustParse("1.2")
	if v.String() != "1.2.0" {
		t.Errorf("String() = %q, want %q", v.String(), "1.2.0")
	}
}

func TestCompatible(t *testing.T) {
	v1 := MustParse("1.0.0")
	v2 := MustParse("1.4.2")
	v3 := MustParse("2.0.0")

	if !v1.Compatible(v2) {
		t.Error("1.0.0 should be compatible with 1.4.2")
	}
	if v1.Compatible(v3) {
		t.Error("1.0.0 should NOT be compatible with 2.0.0")
	}
}

func TestLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"1.0.0", "1.0.1", true},
		{"1.0.1", "1.0.0", false},
		{"1.2.0", "1.10.0", true},
		{"2.0.0", "1.9.9", false},
		{"1.0.0", "1.0.0", false},
	}

	for _, tt := range tests {
		if got := MustParse(tt.a).Less(MustParse(tt.b)); got != tt.want {
			t.Errorf("%s.Less(%s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse(\"x\") did not panic")
		}
	}()
	MustParse("x")
}

func TestCurrent(t *testing.T) {
	if _, err := Parse(Current); err != nil {
		t.Fatalf("Parse(Current) returned error: %v", err)
	}
	if got := UserAgent("vcpanel"); got != "vcpanel/"+Current {
		t.Errorf("UserAgent() = %q", got)
	}
}
