// register.go wires the remnant builder into shower.NewRemnantBuilderFunc.

package remnant

import "github.com/partonsim/partonsim/shower"

func init() {
	shower.NewRemnantBuilderFunc = New
}
