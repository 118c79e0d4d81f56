// register.go wires the hard processes and the decayer into the shower
// factory variables.

package hardprocess

import "github.com/partonsim/partonsim/shower"

func init() {
	shower.NewHardProcessFunc = New
	shower.NewDecayerFunc = NewDecayer
}
