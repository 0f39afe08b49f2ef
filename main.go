package main

import (
	"os"

	"github.com/monishpeddapally/hostel-management-system/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
