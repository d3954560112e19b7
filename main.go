package main

import "github.com/Skenwise/Loan-Management-System/cmd"

func main() {
	cmd.Execute()
}
