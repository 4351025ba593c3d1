package main

import "github.com/EO-DataHub/eodhp-crm-console/cmd"

func main() {
	cmd.Execute()
}
