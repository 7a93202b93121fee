package main

import "github.com/fatoufake/extrator/cmd"

func main() {
	cmd.Execute()
}
