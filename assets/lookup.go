package assets

import "github.com/gogpu/painter"

// Serif strip layout: a blank cell, then upper case, lower case, digits
// and punctuation.
const (
	serifChars        = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789.,-!?"
	serifHalf         = " iljft-,.!?"
	serifThreeQuarter = "IJsrpeao1"
)

// SerifLookup returns the lookup of the proportional serif title font.
func SerifLookup() *painter.CustomLookup {
	return painter.NewCustomLookup(serifChars, 1).
		SetWidth(serifHalf, painter.WidthHalf).
		SetWidth(serifThreeQuarter, painter.WidthThreeQuarters)
}
