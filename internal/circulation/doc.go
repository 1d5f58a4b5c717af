// Package circulation implements the six-compartment lumped model of the
// closed cardiovascular loop: ventricle elastance and vascular capacitor
// pressure laws, the systolic activation schedule, the valve-gated flow
// dynamics, and the derived valve and flow views of a pressure series.
//
// Compartments are addressed by [Compartment] rather than raw indices:
//
//	p[circulation.LeftVentricle] - p[circulation.SystemicArteries]
package circulation
