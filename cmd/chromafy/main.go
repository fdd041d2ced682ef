// Package main is the chromafy command-line tool.
package main

import "github.com/chromafy/chromafy-server/internal/cli"

func main() {
	cli.Execute()
}
