package main

import "cliprelay/cmd/cliprelay-cli/cmd"

func main() {
	cmd.Execute()
}
