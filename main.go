package main

import "uidriver/cmd"

func main() {
	cmd.Execute()
}
