// register.go wires the time-like shower into shower.NewTimeShowerFunc.
// shower owns the interface and cannot import this package back.

package timelike

import "github.com/partonsim/partonsim/shower"

func init() {
	shower.NewTimeShowerFunc = New
}
