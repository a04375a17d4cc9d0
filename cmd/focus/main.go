package main

import "github.com/mrboora04/focuspoint/cmd/focus/root"

func main() {
	root.Execute()
}
