package main

import "gacha-tracker/cmd"

func main() {
	cmd.Execute()
}
