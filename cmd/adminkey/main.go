// adminkey prints a bcrypt hash of an admin key for ADMIN_KEY_HASH.
//
//	go run ./cmd/adminkey -key 'my-admin-key'
package main

import (
	"flag"
	"fmt"
	"os"

	"license-control-plane/internal/security"
)

func main() {
	key := flag.String("key", "", "Admin key to hash")
	cost := flag.Int("cost", 12, "bcrypt cost factor (4-31)")
	flag.Parse()

	if *key == "" {
		fmt.Fprintln(os.Stderr, "adminkey: -key is required")
		os.Exit(2)
	}

	hash, err := security.NewHasher(*cost).Hash([]byte(*key))
	if err != nil {
		fmt.Fprintln(os.Stderr, "adminkey:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
