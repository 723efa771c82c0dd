package token

// Identifier is an interned name together with the position of its first
// occurrence. Equality is by string content, per spec §3: two Identifier
// values with the same Name compare equal for every grammar purpose even if
// their recorded positions differ.
type Identifier struct {
	Name string
	Pos  Position
}

// Equal reports whether two identifiers share the same name.
func (id Identifier) Equal(other Identifier) bool { return id.Name == other.Name }

func (id Identifier) String() string { return id.Name }
