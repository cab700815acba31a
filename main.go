package main

import "github.com/Christopher-Hayes/sleepy-hyprland/cmd"

func main() {
	cmd.Execute()
}
