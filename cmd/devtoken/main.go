package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"peerraise/internal/platform/callerauth"
	"peerraise/internal/platform/config"
)

// devtoken prints a signed caller token for local testing against an API
// started with AUTH_JWT_SECRET.
func main() {
	subject := flag.String("subject", "", "caller principal to embed as the token subject")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	issuer, err := callerauth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
	if err != nil {
		log.Fatalf("build issuer: %v", err)
	}
	token, err := issuer.Issue(*subject, *ttl, time.Now())
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}
	fmt.Println(token)
}
