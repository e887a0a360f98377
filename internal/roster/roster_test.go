package roster

import "testing"

func TestCodesAndNamesAreUnique(t *testing.T) {
	codes := make(map[string]bool)
	names := make(map[string]bool)

	for _, c := range All() {
		if c.Code == "" {
			t.Errorf("caregiver %q has empty code", c.Name)
		}
		if codes[c.Code] {
			t.Errorf("duplicate code %q", c.Code)
		}
		if names[c.Name] {
			t.Errorf("duplicate name %q", c.Name)
		}
		codes[c.Code] = true
		names[c.Name] = true
	}
}

func TestByCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"F resolves to Fer", "F", "Fer"},
		{"N resolves to Nines", "N", "Nines"},
		{"C resolves to Conchi", "C", "Conchi"},
		{"Otro resolves to Otro", "Otro", "Otro"},
		{"unknown code falls back to Otro", "ZZ", "Otro"},
		{"empty code falls back to Otro", "", "Otro"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ByCode(tt.code)

			if got.Name != tt.want {
				t.Errorf("ByCode(%q).Name = %q, want %q", tt.code, got.Name, tt.want)
			}
		})
	}
}

func TestByName(t *testing.T) {
	c, ok := ByName("Nines")
	if !ok || c.Code != "N" {
		t.Errorf("ByName(Nines) = (%v, %v), want code N", c, ok)
	}

	if _, ok := ByName("nobody"); ok {
		t.Error("ByName(nobody) = true, want false")
	}
}

func TestValidCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{"empty code means unassign", "", true},
		{"known code F", "F", true},
		{"known code Otro", "Otro", true},
		{"unknown code", "ZZ", false},
		{"lowercase variant is not a code", "f", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidCode(tt.code); got != tt.want {
				t.Errorf("ValidCode(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}
