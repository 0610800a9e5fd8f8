package main

import "github.com/FACorreiaa/storefront-api/cmd"

// @title                      Storefront API
// @version                    1.0
// @description                REST backend for an eCommerce storefront.
// @BasePath                   /api
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	cmd.Execute()
}
