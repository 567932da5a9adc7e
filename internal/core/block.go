package core

// BlockDefinition is an immutable row of the block table loaded from
// blocks.json. Block ids double as World tile values.
type BlockDefinition struct {
	ID          uint8
	Name        string
	RGBA        [4]uint8
	Description string
	Category    string
}
