package main

import "solidity-lsp/internal/cli"

func main() {
	cli.Execute()
}
