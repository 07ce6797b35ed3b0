package main

import (
	"os"

	"github.com/bradlthomas/ksoap2utility/cmd/ksoap2call/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
