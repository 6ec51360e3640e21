package main

import "survey-gateway/cmd"

func main() {
	cmd.Execute()
}
