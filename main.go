package main

import (
	"context"
	"os"

	"flip/cmd"
)

func main() {
	err := cmd.Cmd.Run(context.Background(), os.Args)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
