package dropdown

import "math"

// Rect is the vertical extent of a rendered box, in rows.
type Rect struct {
	Top    int
	Height int
}

// CalculateScrollPosition returns the scroll offset that centers item
// within container, given the container's current offset.
func CalculateScrollPosition(item, container Rect, current int) int {
	pos := float64(current) - float64(container.Top-item.Top) -
		float64(container.Height)/2 + float64(item.Height)/2
	return int(math.Floor(pos))
}
