package global

import (
	"github.com/skyring/file-explorer-service/pkg/fileurl"
)

var (
	// ROOT is the directory the binary runs from
	ROOT string
	Name string = "File Explorer Service"
)

func init() {
	ROOT = fileurl.GetExePath() + "/"
}
