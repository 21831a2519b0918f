package state

import (
	"errors"
	"fmt"
	"hash/crc32"
	"strconv"
	"strings"
)

// Id prefixes.
const (
	TaskPrefix          = "T"
	WorkUnitPrefix      = "WU"
	ActionRequestPrefix = "AR"
)

const (
	crcAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	crcDigits   = 3
	crcModulus  = 62 * 62 * 62
)

// ErrMalformedID is returned for ids that do not follow <PREFIX>-<N>-<CRC>.
var ErrMalformedID = errors.New("malformed id")

type (
	TaskID          string
	WorkUnitID      string
	ActionRequestID string
)

// NewID renders <prefix>-<n>-<crc>.
func NewID(prefix string, n int64) string {
	return prefix + "-" + strconv.FormatInt(n, 10) + "-" + checksum(n)
}

// ParseID validates id and returns its prefix and counter value.
func ParseID(id string) (string, int64, error) {
	parts := strings.Split(id, "-")
	if len(parts) != 3 || parts[0] == "" {
		return "", 0, fmt.Errorf("%w: %q", ErrMalformedID, id)
	}
	n, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || n < 0 || strconv.FormatInt(n, 10) != parts[1] {
		return "", 0, fmt.Errorf("%w: %q: invalid counter", ErrMalformedID, id)
	}
	if checksum(n) != parts[2] {
		return "", 0, fmt.Errorf("%w: %q: checksum mismatch", ErrMalformedID, id)
	}
	return parts[0], n, nil
}

// checksum is the CRC-32 (IEEE) of the decimal counter reduced to 3 base-62 digits.
func checksum(n int64) string {
	value := crc32.ChecksumIEEE([]byte(strconv.FormatInt(n, 10))) % crcModulus
	digits := make([]byte, crcDigits)
	for i := crcDigits - 1; i >= 0; i-- {
		digits[i] = crcAlphabet[value%62]
		value /= 62
	}
	return string(digits)
}
