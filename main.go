package main

import (
	_ "time/tzdata"

	"github.com/naka-gawa/release-stats/cmd"
)

func main() {
	cmd.Execute()
}
