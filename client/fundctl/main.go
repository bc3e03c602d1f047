package main

import "FundingIntel/client/fundctl/cmd"

func main() {
	cmd.Execute()
}
