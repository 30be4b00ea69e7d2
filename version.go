package jotter

import (
	_ "embed"
)

// Version is the released version of jotter, read from the VERSION file.
//
//go:embed VERSION
var Version string
