package main

import "github.com/perisicnikola37/expense-tracker-api/cmd"

func main() {
	cmd.Execute()
}
