// Package main is the entry point for the ngshift CLI.
package main

import "ngshift.dev/pkg/ngshift/cmd"

func main() {
	cmd.Execute()
}
