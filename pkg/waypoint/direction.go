package waypoint

import "waypoints/pkg/dom"

// Axis is one of the two scroll axes a waypoint can track.
type Axis int

const (
	Vertical Axis = iota
	Horizontal
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Direction is the way the scroll position moved across a threshold.
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// forward and backward give the direction reported when an axis enters
// and exits its waypoint.
func forward(a Axis) Direction {
	if a == Horizontal {
		return Right
	}
	return Down
}

func backward(a Axis) Direction {
	if a == Horizontal {
		return Left
	}
	return Up
}

// Callback receives the crossing direction and the bound element.
type Callback func(dir Direction, el *dom.Node)
