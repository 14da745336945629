package main

import "github.com/hance08/kea-ledger/cmd"

func main() {
	cmd.Execute()
}
