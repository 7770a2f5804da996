// Package main provides the xlref command line tool for inspecting cell
// references and editing merged regions of xlsx workbooks.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
