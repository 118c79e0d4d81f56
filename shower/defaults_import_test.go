package shower_test

// Blank import triggers the component packages' init(), which fill the
// shower factory variables. Package shower's internal tests can then build a
// full Generator without importing the components directly (which would
// create an import cycle).
import _ "github.com/partonsim/partonsim/shower/defaults"
