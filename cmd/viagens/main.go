package main

import "github.com/franceviagens/portal/cmd/viagens/cmd"

func main() {
	cmd.Execute()
}
