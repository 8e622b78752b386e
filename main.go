package main

import "github.com/erdemkosk/udplink/cmd"

func main() {
	cmd.Execute()
}
