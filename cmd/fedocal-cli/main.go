package main

import "github.com/fedora-infra/fedocal-messages/cmd/fedocal-cli/cmd"

func main() {
	cmd.Execute()
}
