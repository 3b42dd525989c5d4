// Command tokengen prints a bearer token for a user id. Dev utility for
// exercising the API with curl.
package main

import (
	"flag"
	"fmt"
	"log"

	"mockbook/pkg/token"
)

func main() {
	id := flag.Int("id", 0, "user id to mint a token for")
	flag.Parse()

	if *id <= 0 {
		log.Fatal("tokengen: -id must be a positive user id")
	}

	fmt.Println(token.Encode(*id))
}
