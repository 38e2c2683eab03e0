package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "scan":
			if err := runScan(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
			return
		case "export":
			if err := runExport(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
			return
		case "version":
			fmt.Println("leadgrid " + version)
			return
		case "help", "--help", "-h":
			printUsage()
			return
		}
	}

	printUsage()
	os.Exit(2)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `leadgrid - radius-based business lead scanner

Usage:
  leadgrid scan [flags]     Scan a circular area for businesses
  leadgrid export [flags]   Export a previous scan .db to CSV or JSON
  leadgrid version          Show version

Run 'leadgrid scan --help' or 'leadgrid export --help' for flags.
`)
}
