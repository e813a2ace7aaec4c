package main

import "github.com/frahmantamala/sistema-extras/cmd"

func main() {
	cmd.Execute()
}
