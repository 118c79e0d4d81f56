// Package defaults links the built-in components into the shower factory
// variables. Import it for side effects:
//
//	import _ "github.com/partonsim/partonsim/shower/defaults"
package defaults

import (
	_ "github.com/partonsim/partonsim/shower/hardprocess"
	_ "github.com/partonsim/partonsim/shower/multiparton"
	_ "github.com/partonsim/partonsim/shower/remnant"
	_ "github.com/partonsim/partonsim/shower/spacelike"
	_ "github.com/partonsim/partonsim/shower/timelike"
)
