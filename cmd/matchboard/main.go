package main

import "github.com/vietddude/matchboard/internal/cli"

func main() {
	cli.Execute()
}
