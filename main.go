package main

import "github.com/llehouerou/shloka/cmd"

func main() {
	cmd.Execute()
}
