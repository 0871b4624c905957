package main

import (
	_ "embed"

	"github.com/skyring/file-explorer-service/cmd"
)

//go:embed config/config.yaml
var c string

func main() {
	cmd.Execute(c)
}
