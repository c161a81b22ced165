// Command storefrontctl browses the commerce backend the way the storefront
// sees it: windowed product sections, countries and a shopper's orders.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(nil).Execute(); err != nil {
		os.Exit(1)
	}
}
