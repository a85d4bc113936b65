package main

import "scan-smuggler/cmd"

func main() {
	cmd.Execute()
}
