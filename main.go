package main

import "github.com/airRnot1106/git-ombl/cmd"

func main() {
	cmd.Execute()
}
