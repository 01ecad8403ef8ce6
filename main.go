// Package main is the entry point for the splicer CLI.
package main

import "splicer.dev/pkg/splicer/cmd"

func main() {
	cmd.Execute()
}
