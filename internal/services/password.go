package services

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

func hashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// compareDummy spends the same bcrypt work as a real comparison so a login
// for an unknown user takes as long as one with a wrong password.
func compareDummy(password string, cost int) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}
