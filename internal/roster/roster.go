package roster

// Caregiver is one of the fixed identities eligible for day assignments
type Caregiver struct {
	Name  string // display name, unique
	Code  string // short persisted code, unique, never empty
	Color string // display color (hex)
}

// The household roster. Otro doubles as the catch-all identity for
// codes that are no longer recognized.
var (
	Fer    = Caregiver{Name: "Fer", Code: "F", Color: "#ffb6b9"}
	Nines  = Caregiver{Name: "Nines", Code: "N", Color: "#8aa1d1"}
	Conchi = Caregiver{Name: "Conchi", Code: "C", Color: "#cae4d6"}
	Otro   = Caregiver{Name: "Otro", Code: "Otro", Color: "#ffd36e"}
)

// All returns the full roster in display order
func All() []Caregiver {
	return []Caregiver{Fer, Nines, Conchi, Otro}
}

// ByCode resolves a short code to a caregiver. Unknown non-empty codes
// collapse to Otro so stale or corrupted assignments keep counting
// instead of failing.
func ByCode(code string) Caregiver {
	for _, c := range All() {
		if c.Code == code {
			return c
		}
	}
	return Otro
}

// ByName resolves a display name to a caregiver and reports whether the
// name is part of the roster
func ByName(name string) (Caregiver, bool) {
	for _, c := range All() {
		if c.Name == name {
			return c, true
		}
	}
	return Caregiver{}, false
}

// ValidCode reports whether code is acceptable for an assignment: the
// empty string (unassigned) or one of the roster codes
func ValidCode(code string) bool {
	if code == "" {
		return true
	}
	for _, c := range All() {
		if c.Code == code {
			return true
		}
	}
	return false
}
