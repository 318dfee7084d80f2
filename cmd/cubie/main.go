// Command cubie is an interactive 3x3x3 puzzle for the terminal.
package main

import "github.com/SeamusWaldron/cubie/internal/cli"

func main() {
	cli.Execute()
}
