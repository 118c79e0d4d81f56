// register.go wires the space-like shower into shower.NewSpaceShowerFunc.

package spacelike

import "github.com/partonsim/partonsim/shower"

func init() {
	shower.NewSpaceShowerFunc = New
}
