package main

import "blackpiston/internal/cli"

func main() {
	cli.Execute()
}
