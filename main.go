package main

import "github.com/spectraldani/genkouyoushi/cmd"

func main() {
	cmd.Execute()
}
