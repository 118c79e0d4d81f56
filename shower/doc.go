// Package shower generates hadron-collision events by interleaved parton
// evolution.
//
// A Generator owns one event record, one beam pair and one Driver. For
// every event it asks the HardProcess for subsystem 0 and then lets the
// Driver interleave three evolution components in one sequence of
// decreasing transverse momentum:
//
//   - MultipleInteractions adds further scatterings, each a new subsystem
//   - SpaceShower evolves incoming partons backwards towards the beams
//   - TimeShower radiates off outgoing partons
//
// Every round the Driver asks each component for a dry-run candidate below
// the current ceiling and commits only the hardest. Components never touch
// each other; after a commit the Driver refreshes the others through
// Update or Prepare. The beam remnants and resonance decays follow once no
// component has a candidate left.
//
// Components live in sub-packages and register themselves through the
// New*Func factory variables. Import shower/defaults to get all built-in
// ones.
package shower
