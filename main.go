package main

import "github.com/Taichi-iskw/yt-brief/cmd"

func main() {
	cmd.Execute()
}
