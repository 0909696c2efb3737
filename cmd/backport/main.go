package main

import "github.com/bdsqqq/resource-pack-backporter/cmd/backport/cmd"

func main() {
	cmd.Execute()
}
