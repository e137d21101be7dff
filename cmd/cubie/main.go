// cubie - CLI for applying, playing and replaying Rubik's Cube move sequences.
package main

import (
	"github.com/SeamusWaldron/cubie/internal/cli"
)

func main() {
	cli.Execute()
}
