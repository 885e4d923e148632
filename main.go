package main

import "github.com/theirongolddev/shiftcast/cmd"

func main() {
	cmd.Execute()
}
