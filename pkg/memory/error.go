package memory

// ErrNotFound is returned when a memory doesn't exist in the vault.
// Collaborators branch on the "not found" marker in the message, so the
// text always contains it.
type ErrNotFound struct {
	Name     string
	Category string
}

func (e ErrNotFound) Error() string {
	if e.Name == "" {
		return "memory not found"
	}

	if e.Category != "" {
		return "memory not found: " + e.Category + "/" + e.Name
	}

	return "memory not found: " + e.Name
}
