package service

import "testing"

func TestToFloat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
		nil_ bool
	}{
		{"plain", "12.34", 12.34, false},
		{"negative", "-5", -5, false},
		{"thousands separator", "1,234.5", 1234.5, false},
		{"percent suffix", "3.21%", 3.21, false},
		{"surrounding spaces", " 7 ", 7, false},
		{"empty", "", 0, true},
		{"dash placeholder", "-", 0, true},
		{"garbage", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToFloat(tt.in)
			if tt.nil_ {
				if got != nil {
					t.Fatalf("ToFloat(%q) = %v, want nil", tt.in, *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ToFloat(%q) = nil, want %v", tt.in, tt.want)
			}
			if *got != tt.want {
				t.Errorf("ToFloat(%q) = %v, want %v", tt.in, *got, tt.want)
			}
		})
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(1.234); got != 1.23 {
		t.Errorf("Round2(1.234) = %v, want 1.23", got)
	}
	if got := Round2(1.236); got != 1.24 {
		t.Errorf("Round2(1.236) = %v, want 1.24", got)
	}
	if got := Round2(-0.456); got != -0.46 {
		t.Errorf("Round2(-0.456) = %v, want -0.46", got)
	}
}
