package layer

import "slices"

// Paint ranks, lowest first. Tree order decides traversal and numbering
// only; what ends up on top of a frame is decided here.
const (
	RankBackground = iota * 10
	RankAxis
	RankLine
	RankShape
	RankPoint
	RankCell
	RankLabel
	RankOverlay
)

var paintRanks = map[string]int{
	"background": RankBackground,
	"grid":       RankBackground,
	"axis":       RankAxis,
	"tick":       RankAxis,
	"line":       RankLine,
	"polyline":   RankLine,
	"polygon":    RankLine,
	"curve":      RankLine,
	"bar":        RankShape,
	"rect":       RankShape,
	"shape":      RankShape,
	"circle":     RankShape,
	"point":      RankPoint,
	"cell":       RankCell,
	"header":     RankCell,
	"label":      RankLabel,
	"text":       RankLabel,
	"math":       RankLabel,
	"callout":    RankOverlay,
	"overlay":    RankOverlay,
	"highlight":  RankOverlay,
}

// PaintRank returns the paint rank of a layer type. Unknown types paint
// together with plain shapes.
func PaintRank(typ string) int {
	if r, ok := paintRanks[typ]; ok {
		return r
	}
	return RankShape
}

// SortForPaint orders layers by paint rank, keeping the incoming order
// among layers of the same rank.
func SortForPaint(layers []*Layer) {
	slices.SortStableFunc(layers, func(a, b *Layer) int {
		return PaintRank(a.Type) - PaintRank(b.Type)
	})
}
