package catalog

import "github.com/chrisharrington/irrigo/internal/scheduler"

// defaultSoils is the built-in soil table, keyed by identifier.
var defaultSoils = map[string]scheduler.SoilProfile{
	"sand":       {Name: "Sand", AWHCMmPerM: 60, InfiltrationMmPerHr: 50},
	"sandy-loam": {Name: "Sandy Loam", AWHCMmPerM: 110, InfiltrationMmPerHr: 25},
	"loam":       {Name: "Loam", AWHCMmPerM: 150, InfiltrationMmPerHr: 13},
	"clay-loam":  {Name: "Clay Loam", AWHCMmPerM: 170, InfiltrationMmPerHr: 7},
	"clay":       {Name: "Clay", AWHCMmPerM: 190, InfiltrationMmPerHr: 4},
}
