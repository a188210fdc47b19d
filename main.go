package main

import "giteasync/internal/cmd"

func main() {
	cmd.Execute()
}
