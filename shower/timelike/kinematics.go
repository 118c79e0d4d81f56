package timelike

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/partonsim/partonsim/shower/event"
)

// basis returns two unit vectors orthogonal to n and to each other.
func basis(n r3.Vec) (r3.Vec, r3.Vec) {
	ref := r3.Vec{Z: 1}
	if math.Abs(n.Z) > 0.9 {
		ref = r3.Vec{X: 1}
	}
	e1 := r3.Unit(r3.Cross(n, ref))
	e2 := r3.Cross(n, e1)
	return e1, e2
}

// split decays the massive radiator rStar into two massless daughters in
// the rest frame of frame. The first daughter takes energy fraction z of
// rStar as seen in that frame; phi is the azimuth around rStar's direction.
// ok is false when z is not reachable for the radiator's velocity.
func split(rStar, frame event.Vec4, z, phi float64) (d1, d2 event.Vec4, ok bool) {
	inFrame := rStar.BoostToRest(frame)
	pAbs := inFrame.PAbs()
	if pAbs == 0 || inFrame.E <= 0 {
		return d1, d2, false
	}
	beta := pAbs / inFrame.E
	cosTheta := (2*z - 1) / beta
	if math.Abs(cosTheta) > 1 {
		return d1, d2, false
	}
	sinTheta := math.Sqrt(1 - cosTheta*cosTheta)
	n := r3.Scale(1/pAbs, inFrame.P3())
	e1, e2 := basis(n)

	half := rStar.M() / 2
	dir := r3.Add(
		r3.Add(r3.Scale(sinTheta*math.Cos(phi), e1), r3.Scale(sinTheta*math.Sin(phi), e2)),
		r3.Scale(cosTheta, n),
	)
	a := event.NewVec4(r3.Scale(half, dir), half)
	b := event.NewVec4(r3.Scale(-half, dir), half)

	d1 = a.BoostFromRest(inFrame).BoostFromRest(frame)
	d2 = b.BoostFromRest(inFrame).BoostFromRest(frame)
	return d1, d2, true
}

// massiveInDipole replaces the massless radiator r of a final-final dipole
// with total momentum q by a radiator of mass squared m2, and returns it
// with the shifted recoiler. ok is false when m2 does not fit in the dipole.
func massiveInDipole(r, q event.Vec4, m2 float64) (rStar, rec event.Vec4, ok bool) {
	q2 := q.M2()
	if q2 <= 0 || m2 >= q2 {
		return rStar, rec, false
	}
	qm := math.Sqrt(q2)
	n := r3.Unit(r.BoostToRest(q).P3())
	pAbs := (q2 - m2) / (2 * qm)
	rStar = event.NewVec4(r3.Scale(pAbs, n), (q2+m2)/(2*qm)).BoostFromRest(q)
	rec = event.NewVec4(r3.Scale(-pAbs, n), pAbs).BoostFromRest(q)
	return rStar, rec, true
}
