package main

import "github.com/sqlperf/sqlperf/cmd"

func main() {
	cmd.Execute()
}
