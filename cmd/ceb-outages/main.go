package main

import "github.com/pfrederiksen/ceb-outages/internal/cli"

func main() {
	cli.Execute()
}
