package main

import (
	"os"

	"github.com/centuriae/revtrail/internal/cli"
)

func main() {
	code, _ := cli.Run(os.Args, nil)
	os.Exit(code)
}
