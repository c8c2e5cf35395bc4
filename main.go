package main

import "github.com/AndCook/rover-data-processor/cmd"

func main() {
	cmd.Execute()
}
