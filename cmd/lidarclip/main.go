package main

import (
	"log"
	"os"

	"github.com/pilosa/lidarclip/cmd"
)

func main() {
	rootCmd := cmd.NewRootCommand(os.Stdin, os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
