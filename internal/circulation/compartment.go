package circulation

// Compartment names a slot of the volume and pressure vectors.
type Compartment int

const (
	PulmonaryVeins Compartment = iota
	LeftVentricle
	SystemicArteries
	SystemicVeins
	RightVentricle
	PulmonaryArteries

	// InfarctScar is reserved for a scarred left-ventricle sub-region. It has
	// no slot in the state vectors; only its flow path is declared.
	InfarctScar
)

// NumCompartments is the length of every volume and pressure vector.
const NumCompartments = 6

var compartmentNames = [...]string{
	PulmonaryVeins:    "pulmonary_veins",
	LeftVentricle:     "left_ventricle",
	SystemicArteries:  "systemic_arteries",
	SystemicVeins:     "systemic_veins",
	RightVentricle:    "right_ventricle",
	PulmonaryArteries: "pulmonary_arteries",
	InfarctScar:       "infarct_scar",
}

func (c Compartment) String() string {
	if c < 0 || int(c) >= len(compartmentNames) {
		return "unknown"
	}
	return compartmentNames[c]
}

// Compartments lists the active compartments in vector order.
func Compartments() []Compartment {
	return []Compartment{PulmonaryVeins, LeftVentricle, SystemicArteries, SystemicVeins, RightVentricle, PulmonaryArteries}
}
