package main

import "github.com/veritas-tools/imgprep/cmd/imgprep/cmd"

func main() {
	cmd.Execute()
}
