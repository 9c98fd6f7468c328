package gdc

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
	"strings"
)

// ChunkSize is the read buffer used when hashing files.
const ChunkSize = 1 << 20

// FileMD5 hashes the file at path and returns the digest as lowercase hex.
func FileMD5(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", ErrExpectedFile
	}
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return HashMD5(file)
}

// HashMD5 reads r to the end in ChunkSize reads and returns its MD5 as
// lowercase hex.
func HashMD5(r io.Reader) (string, error) {
	h := md5.New()
	buf := make([]byte, ChunkSize)
	// hide WriterTo so every read goes through buf
	if _, err := io.CopyBuffer(h, struct{ io.Reader }{r}, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SameDigest compares two hex digests ignoring case and surrounding space.
func SameDigest(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
