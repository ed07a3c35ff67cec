package main

import "github.com/svs590/OpenSeaSeis-sub000/cmd/segytool/cmd"

func main() {
	cmd.Execute()
}
