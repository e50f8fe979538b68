package main

import "path-store/cmd"

func main() {
	cmd.Execute()
}
