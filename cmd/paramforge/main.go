/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/ashenlab/paramforge/cmd/paramforge/cmd"
)

func main() {
	cmd.Execute()
}
