// Package app provides the application container holding all
// dependencies and services.
package app

// Version variables, injected at build time
var (
	Version   string = "0.3.1"
	GitTag    string = "2000.01.01.release"
	BuildTime string = "2000-01-01T00:00:00+0800"
)

const (
	// Name application name
	Name = "File Explorer Service"
)
