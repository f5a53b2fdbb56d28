package main

import "github.com/pfrederiksen/sheet-events/internal/cli"

func main() {
	cli.Execute()
}
