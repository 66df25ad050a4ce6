package main

import "github.com/9Echo/Postcards/cmd"

func main() {
	cmd.Execute()
}
