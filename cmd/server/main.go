package main

import "github.com/eventfeed-io/server/cmd/server/cmd"

func main() {
	cmd.Execute()
}
