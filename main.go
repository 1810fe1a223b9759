package main

import "github.com/helpdesk-tools/deskctl/cmd"

func main() {
	cmd.Execute()
}
