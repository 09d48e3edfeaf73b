package main

import "github.com/isaacphi/promptcheck/internal/ui/cli"

func main() {
	cli.Execute()
}
