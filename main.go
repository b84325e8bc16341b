// Package main is the entry point for the phpmin CLI.
package main

import "phpmin.dev/pkg/phpmin/cmd"

func main() {
	cmd.Execute()
}
