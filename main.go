package main

import "github.com/vibast-solutions/ms-go-social/cmd"

func main() {
	cmd.Execute()
}
