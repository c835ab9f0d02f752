package main

import "github.com/jsphweid/noteindex/cmd"

func main() {
	cmd.Execute()
}
