package model

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrUnknownPattern is returned by PatternByName for names not in the built-in set
var ErrUnknownPattern = errors.New("unknown pattern")

// Point is a cell coordinate, x grows to the right and y grows downwards
type Point struct {
	X, Y int
}

// Pattern is a named set of live cells
type Pattern struct {
	Name  string
	Cells []Point
}

// Spaceship119P4H1V0 is a c/4 spaceship moving one cell left every 4 generations,
// laid out for the default 70x30 grid
var Spaceship119P4H1V0 = Pattern{
	Name: "119P4H1V0",
	Cells: []Point{
		{20, 15}, {21, 13}, {21, 14}, {21, 16}, {21, 17},
		{24, 12}, {24, 13}, {24, 14}, {24, 16}, {24, 17}, {24, 18},
		{25, 12}, {25, 13}, {25, 17}, {25, 18},
		{26, 8}, {26, 9}, {26, 10}, {26, 20}, {26, 21}, {26, 22},
		{28, 8}, {28, 10}, {28, 20}, {28, 22},
		{29, 10}, {29, 11}, {29, 19}, {29, 20},
		{30, 10}, {30, 20},
		{31, 9}, {31, 10}, {31, 20}, {31, 21},
		{32, 10}, {32, 20},
		{33, 10}, {33, 13}, {33, 17}, {33, 20},
		{34, 10}, {34, 13}, {34, 17}, {34, 20},
		{35, 8}, {35, 10}, {35, 11}, {35, 19}, {35, 20}, {35, 22},
		{36, 7}, {36, 9}, {36, 21}, {36, 23},
		{38, 9}, {38, 21},
		{39, 9}, {39, 21},
		{40, 9}, {40, 21},
		{41, 8}, {41, 9}, {41, 21}, {41, 22},
		{42, 8}, {42, 9}, {42, 21}, {42, 22},
		{43, 9}, {43, 11}, {43, 12}, {43, 13}, {43, 17}, {43, 18}, {43, 19}, {43, 21},
		{44, 11}, {44, 12}, {44, 13}, {44, 17}, {44, 18}, {44, 19},
		{45, 11}, {45, 12}, {45, 18}, {45, 19},
		{46, 10}, {46, 11}, {46, 19}, {46, 20},
		{47, 12}, {47, 18},
		{48, 9}, {48, 21},
		{49, 9}, {49, 10}, {49, 20}, {49, 21},
		{51, 8}, {51, 10}, {51, 11}, {51, 19}, {51, 20}, {51, 22},
		{52, 7}, {52, 10}, {52, 11}, {52, 19}, {52, 20}, {52, 23},
		{53, 6}, {53, 10}, {53, 11}, {53, 19}, {53, 20}, {53, 24},
		{54, 7}, {54, 23},
	},
}

// Blinker is the period-2 horizontal oscillator
var Blinker = Pattern{
	Name:  "blinker",
	Cells: []Point{{0, 0}, {1, 0}, {2, 0}},
}

// Glider travels one cell diagonally (down and right) every 4 generations
var Glider = Pattern{
	Name:  "glider",
	Cells: []Point{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}},
}

// Block is the 2x2 still life
var Block = Pattern{
	Name:  "block",
	Cells: []Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
}

var patterns = map[string]Pattern{
	Spaceship119P4H1V0.Name: Spaceship119P4H1V0,
	Blinker.Name:            Blinker,
	Glider.Name:             Glider,
	Block.Name:              Block,
}

// PatternByName looks up a built-in pattern
func PatternByName(name string) (Pattern, error) {
	p, ok := patterns[name]
	if !ok {
		return Pattern{}, errors.Wrapf(ErrUnknownPattern, "[PatternByName] %q", name)
	}
	return p, nil
}

// PatternNames lists the built-in pattern names in sorted order
func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
