package main

import "prq.dev/prq/cmd"

func main() {
	cmd.Execute()
}
