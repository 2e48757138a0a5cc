// Command farmctl is the operator CLI: inspect budgets, import scale
// tickets, export them, copy a season forward and send the weekly report.
package main

import (
	"fmt"
	"os"
	_ "time/tzdata"
)

func main() {
	if err := newRootCmd(&app{out: os.Stdout}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
