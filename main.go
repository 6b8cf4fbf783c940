package main

import "addrcluster/cmd"

const version = "1.0.0"

func main() {
	cmd.Execute(version)
}
