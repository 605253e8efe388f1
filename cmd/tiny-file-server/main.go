package main

import (
	"github.com/niels/tiny-file-server/internal/cmd"
)

func main() {
	cmd.Execute()
}
