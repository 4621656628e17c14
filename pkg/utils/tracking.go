package utils

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const trackingAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateTrackingID returns a human-facing parcel code: the current
// millisecond timestamp in base 36, a dash, and 5 random uppercase base-36
// characters, e.g. "mbxr2k1q-X4T9A".
func GenerateTrackingID() string {
	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 36)

	random := make([]byte, 5)
	for i := range random {
		random[i] = trackingAlphabet[rand.Intn(len(trackingAlphabet))]
	}

	return timestamp + "-" + strings.ToUpper(string(random))
}
