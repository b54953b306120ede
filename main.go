package main

import "github.com/yarlson/taskdesk/cmd"

func main() {
	cmd.Execute()
}
