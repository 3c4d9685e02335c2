package main

import "github.com/envisionar/portal/cmd/envisionar/cmd"

func main() {
	cmd.Execute()
}
