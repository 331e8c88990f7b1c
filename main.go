package main

import (
	"switrs-db/cmd"
)

func main() {
	cmd.Execute()
}
