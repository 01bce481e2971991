package main

import "github.com/Rizwanrichu87/studio/cmd/hs/root"

func main() {
	root.Execute()
}
