// cubestudio - Rubik's cube net editor, solve client and move player.
package main

import (
	"github.com/SeamusWaldron/cubestudio/internal/cli"
)

func main() {
	cli.Execute()
}
