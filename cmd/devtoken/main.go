// Command devtoken prints a signed JWT for calling the API locally.
//
//	go run ./cmd/devtoken -sub 6f1c... -roles organizer -email ana@example.com
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"eventmarketplace/config"
	"eventmarketplace/internal/adapters/auth"
	"eventmarketplace/internal/domain"
)

func main() {
	sub := flag.String("sub", "", "subject (user id)")
	roles := flag.String("roles", domain.RoleCustomer, "comma separated roles: customer, organizer, admin")
	mail := flag.String("email", "", "email claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *sub == "" {
		fmt.Fprintln(os.Stderr, "devtoken: -sub is required")
		os.Exit(2)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "devtoken:", err)
		os.Exit(1)
	}
	if cfg.Environment == "production" {
		fmt.Fprintln(os.Stderr, "devtoken: refusing to mint tokens with production configuration")
		os.Exit(1)
	}

	actor := domain.Actor{ID: *sub}
	for _, r := range strings.Split(*roles, ",") {
		if r = strings.TrimSpace(r); r != "" {
			actor.Roles = append(actor.Roles, r)
		}
	}
	token, err := auth.NewJWTIssuer(cfg.JWTSecret).Issue(actor, *mail, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "devtoken:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
