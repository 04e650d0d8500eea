package main

import (
	"fmt"
	"os"

	"github.com/kaytu-io/cloud-catalog/pkg/catalog"
)

func main() {
	if err := catalog.Command().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
