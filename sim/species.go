package sim

// Species identifies one of the two particle kinds. Diameters are fixed per
// species for the whole run; a particle is addressed by (species, slot index
// in that species' position slice).
type Species int

const (
	SpeciesSmall Species = iota
	SpeciesLarge
	numSpecies
)

// Other returns the opposite species.
func (s Species) Other() Species {
	if s == SpeciesSmall {
		return SpeciesLarge
	}
	return SpeciesSmall
}

func (s Species) String() string {
	if s == SpeciesSmall {
		return "small"
	}
	return "large"
}
