package qcd

// Toy leading-order splitting kernels P(z). They are placeholders with the
// right soft and collinear poles, not tuned physics.

// PQToQG is q -> q g with z the quark momentum fraction.
func PQToQG(z float64) float64 {
	return CF * (1 + z*z) / (1 - z)
}

// PGToGG is g -> g g for one dipole end, z the fraction of the radiator.
func PGToGG(z float64) float64 {
	w := 1 - z*(1-z)
	return CA * w * w / (1 - z)
}

// PGToQQ is g -> q qbar with z the quark fraction.
func PGToQQ(z float64) float64 {
	return TR * (z*z + (1-z)*(1-z))
}

// PQToGQ is q -> g q with z the gluon fraction.
func PQToGQ(z float64) float64 {
	return CF * (1 + (1-z)*(1-z)) / z
}

// PGToGGFull is the complete g -> g g kernel, used in backward evolution
// where both gluon poles belong to one branching.
func PGToGGFull(z float64) float64 {
	w := 1 - z*(1-z)
	return CA * w * w / (z * (1 - z))
}
