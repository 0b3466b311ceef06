package main

import (
	"github.com/indrora/pigment/tint/cmd"
)

func main() {
	cmd.Execute()
}
