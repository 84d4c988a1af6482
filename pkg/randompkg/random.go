// Package randompkg provides functionality gor generating random applications common items.
package randompkg

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// IntBetween generates a random integer between min and max.
func IntBetween(min, max int) int32 {
	return int32(min) + int32(Intn(max-min))
}

// Int64Between generates a random int64 between min and max.
func Int64Between(min, max int64) int64 {
	return min + Intn(int(max-min))
}

// String generates a random string of length n.
func String(n int) string {
	var sb strings.Builder

	k := len(alphabet)

	for i := 0; i < n; i++ {
		c := alphabet[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

// Name generates a random user name.
func Name() string {
	return String(6)
}

// Email generates a random email.
func Email() string {
	return fmt.Sprintf("%s@email.com", String(10))
}

// BankName generates a random bank name.
func BankName() string {
	return "bank " + String(4)
}

// AccountNumber generates a random ten digit account number.
func AccountNumber() int64 {
	return Int64Between(1_000_000_000, 10_000_000_000)
}

// IdentityNumber generates a random sixteen digit identity number.
func IdentityNumber() int64 {
	return Int64Between(1_000_000_000_000_000, 10_000_000_000_000_000)
}

// IdentityType generates a random identity document type.
func IdentityType() string {
	types := []string{"KTP", "SIM", "PASSPORT"}
	return types[Intn(len(types))]
}

// MoneyAmountBetween generates a random amount of money between min and max.
func MoneyAmountBetween(min, max int64) int64 {
	return Int64Between(min, max)
}
