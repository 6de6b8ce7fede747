package main

import (
	"github.com/stonksapp/stonks/cmd"
)

func main() {
	cmd.Execute()
}
