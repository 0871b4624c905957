package convert

import (
	"github.com/jinzhu/copier"
)

// StructAssign copies same-named fields from src into dst (a pointer)
// and returns dst, so a mapping reads as one expression.
func StructAssign(src any, dst any) any {
	copier.Copy(dst, src)
	return dst
}
