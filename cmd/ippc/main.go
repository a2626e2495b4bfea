package main

import (
	"os"

	"github.com/msto63/ippcode/cmd/ippc/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
