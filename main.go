package main

import "github.com/drgolem/id3tools/cmd"

func main() {
	cmd.Execute()
}
