package main

import "github.com/Rorical/glassdash/cmd"

func main() {
	cmd.Execute()
}
