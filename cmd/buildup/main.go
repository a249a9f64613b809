package main

import (
	"os"

	"github.com/bobmcallan/buildup/internal/common"
)

func main() {
	common.LoadVersionFromFile()

	if err := newRootCmd(&rootOptions{}).Execute(); err != nil {
		os.Exit(1)
	}
}
