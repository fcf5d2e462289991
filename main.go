package main

import "github.com/jfmyers9/lyricsgenius/cmd"

func main() {
	cmd.Execute()
}
