// Package catalog provides the grass and soil lookup tables referenced by a
// scheduler.Zone. Lookup failure is the catalogue's concern, never the
// kernel's: the kernel accepts a fully-resolved Zone and never consults
// this package directly.
package catalog

import (
	"github.com/chrisharrington/irrigo/internal/scheduler"
)

// defaultGrasses is the built-in grass table, keyed by identifier. A
// deployment with no database configured still gets a usable catalogue.
var defaultGrasses = map[string]scheduler.GrassProfile{
	"fescue":       {Name: "Tall Fescue", Kc: 0.85},
	"bermuda":      {Name: "Bermudagrass", Kc: 0.80},
	"zoysia":       {Name: "Zoysiagrass", Kc: 0.80},
	"kentucky":     {Name: "Kentucky Bluegrass", Kc: 0.90},
	"st-augustine": {Name: "St. Augustinegrass", Kc: 0.80},
	"ryegrass":     {Name: "Perennial Ryegrass", Kc: 0.95},
}
