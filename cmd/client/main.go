package main

import "subtracker/cmd/client/cmd"

func main() {
	cmd.Execute()
}
