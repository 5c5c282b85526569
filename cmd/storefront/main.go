package main

import "github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cli"

func main() {
	cli.Execute()
}
