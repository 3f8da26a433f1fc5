package main

import "github.com/tanaer/skillguard/cmd"

func main() {
	cmd.Execute()
}
