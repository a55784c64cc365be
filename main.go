// Package main is the entry point for the stubber CLI.
package main

import "stubber.dev/pkg/stubber/cmd"

func main() {
	cmd.Execute()
}
