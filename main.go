package main

import "github.com/pharmaflow/formulex/cmd"

func main() {
	cmd.Execute()
}
