package main

import "dealrag/cmd"

func main() {
	cmd.Execute()
}
