// Package reference generates the short human-readable codes shown to
// users for bookings and waitlist requests (e.g. "SQ-8RK2M4PD").
package reference

import (
	"fmt"
	"strings"
	"time"

	"github.com/speps/go-hashids/v2"
)

// Alphabet excludes 0/O/1/I so codes survive being read over the phone.
const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

type Generator struct {
	h      *hashids.HashID
	prefix string
	now    func() time.Time
}

func NewGenerator(salt, prefix string, now func() time.Time) (*Generator, error) {
	if now == nil {
		now = time.Now
	}

	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = 8
	hd.Alphabet = alphabet

	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, fmt.Errorf("init hashids: %w", err)
	}
	return &Generator{h: h, prefix: prefix, now: now}, nil
}

// Generate derives a code from the owning user and the current instant.
// Codes are opaque and not meant to be decoded back.
func (g *Generator) Generate(userID int64) (string, error) {
	code, err := g.h.EncodeInt64([]int64{userID, g.now().UnixMilli()})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s", g.prefix, strings.ToUpper(code)), nil
}
