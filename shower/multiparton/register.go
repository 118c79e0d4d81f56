// register.go wires multiple interactions into shower.NewMultipleInteractionsFunc.

package multiparton

import "github.com/partonsim/partonsim/shower"

func init() {
	shower.NewMultipleInteractionsFunc = New
}
