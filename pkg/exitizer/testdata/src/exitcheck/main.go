package main

import (
	"os"
	goos "os"
)

// A
type A struct{}

// Exit
func (a A) Exit() {}

// Exit
func Exit() {}

func main() {
	os.Exit(1) // want "os.Exit call"
	Exit()
	a := A{}
	a.Exit()
	defer func() {
		goos.Exit(2) // want "os.Exit call"
	}()
}

func helper() {
	os.Exit(3)
}
