package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"
)

var (
	// Counter used when crypto/rand is unavailable
	idCounter uint64
)

// GenerateRunID generates a run ID with a timestamp prefix
func GenerateRunID(now time.Time) string {
	timestamp := now.Format("20060102-150405")
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		count := atomic.AddUint64(&idCounter, 1)
		return fmt.Sprintf("run-%s-%x", timestamp, count)
	}
	return fmt.Sprintf("run-%s-%s", timestamp, hex.EncodeToString(b))
}
