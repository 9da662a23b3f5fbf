package main

import (
	"os"

	"github.com/lettered/verifyapi/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
