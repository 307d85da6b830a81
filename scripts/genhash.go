// Operator tool for minting admin credentials. Admin rows are created
// out-of-band, never through a public endpoint:
//
//	go run scripts/genhash.go -email admin@example.com -password 'S3cret!pass'
//
// Prints the bcrypt hash and a ready-to-run INSERT for the admins table.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const specialChars = `!@#$%^&*()_+-=[]{};:'",.<>/?`

func checkPolicy(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(specialChars, r):
			special = true
		}
	}
	var missing []string
	if !lower {
		missing = append(missing, "a lowercase letter")
	}
	if !upper {
		missing = append(missing, "an uppercase letter")
	}
	if !digit {
		missing = append(missing, "a digit")
	}
	if !special {
		missing = append(missing, "a special character")
	}
	if len(missing) > 0 {
		return fmt.Errorf("password must contain %s", strings.Join(missing, ", "))
	}
	return nil
}

func main() {
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password (min 8 chars, mixed case, digit, special)")
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := checkPolicy(*password); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	fmt.Printf("Email: %s\nHash:  %s\n\n", *email, string(hash))
	fmt.Printf("INSERT INTO admins (email, password_hash) VALUES ('%s', '%s');\n", *email, string(hash))
}
