package parse

import "testing"

func TestInt(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"300", 300, true},
		{" 200 ", 200, true},
		{"", 0, false},
		{"100px", 0, false},
		{"-5", -5, true},
	}
	for _, tt := range tests {
		got, ok := Int(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Int(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestIntOr(t *testing.T) {
	if got := IntOr("abc", 7); got != 7 {
		t.Errorf("IntOr fallback = %d", got)
	}
	if got := IntOr("3", 7); got != 3 {
		t.Errorf("IntOr = %d", got)
	}
	if got := IntOrZero("x"); got != 0 {
		t.Errorf("IntOrZero = %d", got)
	}
}
