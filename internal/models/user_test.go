package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoleSatisfies(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		required Role
		want     bool
	}{
		{name: "User meets user", role: RoleUser, required: RoleUser, want: true},
		{name: "Admin meets user", role: RoleAdmin, required: RoleUser, want: true},
		{name: "Admin meets admin", role: RoleAdmin, required: RoleAdmin, want: true},
		{name: "User below admin", role: RoleUser, required: RoleAdmin, want: false},
		{name: "Unknown role", role: Role("guest"), required: RoleUser, want: false},
		{name: "Empty role", role: Role(""), required: RoleUser, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.Satisfies(tt.required))
		})
	}
}

func TestUserPasswordHashNotSerialized(t *testing.T) {
	u := User{ID: 1, Username: "alice", PasswordHash: "$2a$10$secret", Role: RoleUser}
	data, err := json.Marshal(u)
	assert.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
	assert.NotContains(t, string(data), "password")
}

func TestDate(t *testing.T) {
	d := NewDate(time.Date(2025, 10, 22, 15, 30, 0, 0, time.FixedZone("x", -5*3600)))
	assert.Equal(t, "2025-10-22", d.String())

	data, err := json.Marshal(d)
	assert.NoError(t, err)
	assert.Equal(t, `"2025-10-22"`, string(data))

	var back Date
	assert.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equal(d.Time))

	var scanned Date
	assert.NoError(t, scanned.Scan("2025-10-22 00:00:00+00:00"))
	assert.Equal(t, "2025-10-22", scanned.String())
	assert.NoError(t, scanned.Scan([]byte("2024-01-02")))
	assert.Equal(t, "2024-01-02", scanned.String())
	assert.Error(t, scanned.Scan(42))

	_, err = ParseDate("22/10/2025")
	assert.Error(t, err)
}
