package main

import "storygrabber/cmd"

func main() {
	cmd.Execute()
}
