package scan

import "strconv"

// AirID is skipped everywhere: air never shows up in counts.
const AirID = 0

// blockNames maps the numeric block IDs we care about to report names.
// IDs above 255 come from the modded server's ID space.
var blockNames = map[int]string{
	3658: "server",
	54:   "chest",
	146:  "chest",
	3886: "rf",
	3664: "electric_meter",
	158:  "dropper",
	3574: "switch",
	3575: "repair_machine",
	3576: "ecotron",
	3663: "electric_collector",
	3379: "sealable",
	2845: "heavy_wire",
	49:   "obsidian",
	3657: "petroleum",
	3383: "solar_panel",
	212:  "dark_ore",
	52:   "spawner",
	3572: "incubator",
	7:    "bedrock",
	1:    "stone",
}

type Kind int

const (
	// Air is the explicit absence marker, distinct from an ID we merely
	// don't have a name for.
	Air Kind = iota
	Known
	Unknown
)

// Classification is the result of looking up a block ID. It keeps the ID
// around so unnamed blocks can still be labeled.
type Classification struct {
	Kind Kind
	ID   int
	name string
}

// Classify is total over all IDs: air, a table entry, or Unknown.
func Classify(id int) Classification {
	if id == AirID {
		return Classification{Kind: Air, ID: id}
	}
	if name, ok := blockNames[id]; ok {
		return Classification{Kind: Known, ID: id, name: name}
	}
	return Classification{Kind: Unknown, ID: id}
}

// Label returns the table name for known blocks and the decimal ID string
// for everything else.
func (c Classification) Label() string {
	if c.Kind == Known {
		return c.name
	}
	return strconv.Itoa(c.ID)
}
