// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// ConfirmationCodeDigits is the length of a generated confirmation code.
const ConfirmationCodeDigits = 6

// GenerateConfirmationCode returns a zero-padded numeric code read from crypto/rand.
func GenerateConfirmationCode() (string, error) {
	upper := new(big.Int).Exp(big.NewInt(10), big.NewInt(ConfirmationCodeDigits), nil)

	n, err := rand.Int(rand.Reader, upper)
	if err != nil {
		return "", fmt.Errorf("sec: failed to read random code: %w", err)
	}

	return fmt.Sprintf("%0*d", ConfirmationCodeDigits, n.Int64()), nil
}
