package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"notesvc/internal/app/dsn"
	"notesvc/internal/app/repository"
)

const keyAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// newKey returns a readable key like XXXX-XXXX-XXXX-XXXX-XXXX.
func newKey() (string, error) {
	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	var b strings.Builder
	for i, c := range raw {
		if i > 0 && i%4 == 0 {
			b.WriteByte('-')
		}
		b.WriteByte(keyAlphabet[int(c)%len(keyAlphabet)])
	}
	return b.String(), nil
}

func main() {
	ownerName := flag.String("owner", "", "name of the license owner")
	days := flag.Int("days", 365, "number of days the license is valid")
	flag.Parse()

	if *ownerName == "" {
		log.Fatal("missing required flag: -owner")
	}
	if *days <= 0 {
		log.Fatal("-days must be positive")
	}

	_ = godotenv.Load()

	repo, err := repository.New(dsn.FromEnv())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	key, err := newKey()
	if err != nil {
		log.Fatalf("Failed to generate key: %v", err)
	}

	expiresAt := time.Now().UTC().AddDate(0, 0, *days)
	licenseKey, err := repo.CreateLicenseKey(key, *ownerName, expiresAt)
	if err != nil {
		log.Fatalf("Failed to store key: %v", err)
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("LICENSE KEY GENERATED")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()
	fmt.Println("Owner Name: ", licenseKey.OwnerName)
	fmt.Println("Valid Days: ", *days)
	fmt.Println("Expires At: ", licenseKey.ExpiresAt.Format(time.RFC3339))
	fmt.Println()
	fmt.Println("LICENSE KEY:")
	fmt.Println(strings.Repeat("-", 60))
	fmt.Println(licenseKey.Key)
	fmt.Println(strings.Repeat("-", 60))
}
