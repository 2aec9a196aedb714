package main

import "github.com/goliatone/go-catalog-sync/cmd"

func main() {
	cmd.Execute()
}
