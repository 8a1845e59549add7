// Command token signs an access token for the back office with the
// configured JWT secret.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/config"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/jwt"
)

func main() {
	userID := flag.String("user", "", "user id recorded in the token")
	email := flag.String("email", "", "email recorded as creator of registry writes")
	admin := flag.Bool("admin", false, "grant write access")
	flag.Parse()

	if *userID == "" && *email == "" {
		fmt.Fprintln(os.Stderr, "one of -user or -email is required")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).GenerateAccessToken(*userID, *email, *admin)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error signing token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintln(os.Stderr, "expires", time.Unix(expiresAt, 0).Format(time.RFC3339))
}
