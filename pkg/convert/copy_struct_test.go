package convert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type srcRecord struct {
	ID      string
	Name    string
	Size    int64
	Created time.Time
	Extra   string
}

type dstRecord struct {
	ID      string
	Name    string
	Size    int64
	Created time.Time
}

func TestStructAssign(t *testing.T) {
	now := time.Now()
	src := &srcRecord{ID: "a", Name: "report.txt", Size: 42, Created: now, Extra: "dropped"}

	dst := StructAssign(src, &dstRecord{}).(*dstRecord)

	assert.Equal(t, "a", dst.ID)
	assert.Equal(t, "report.txt", dst.Name)
	assert.Equal(t, int64(42), dst.Size)
	assert.Equal(t, now, dst.Created)
}
