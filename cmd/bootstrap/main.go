package main

import (
	"github.com/onflow/flow-bootstrap/cmd/bootstrap/cmd"
)

func main() {
	cmd.Execute()
}
