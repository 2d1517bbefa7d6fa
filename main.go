package main

import "github.com/vietdv277/cfnperms/cmd"

func main() {
	cmd.Execute()
}
