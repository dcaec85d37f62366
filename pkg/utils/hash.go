package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// HashFileQuick computes a SHA256 hash of the first and last chunks of
// a file. Faster than a full hash for large binaries and good enough to
// confirm that two same-named files are in fact copies.
func HashFileQuick(path string, chunkSize int64) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", err
	}

	hash := sha256.New()

	if info.Size() <= chunkSize*2 {
		if _, err := io.Copy(hash, file); err != nil {
			return "", err
		}
		return hex.EncodeToString(hash.Sum(nil)), nil
	}

	head := make([]byte, chunkSize)
	if _, err := io.ReadFull(file, head); err != nil {
		return "", err
	}
	hash.Write(head)

	if _, err := file.Seek(-chunkSize, io.SeekEnd); err != nil {
		return "", err
	}
	tail := make([]byte, chunkSize)
	if _, err := io.ReadFull(file, tail); err != nil {
		return "", err
	}
	hash.Write(tail)

	return hex.EncodeToString(hash.Sum(nil)), nil
}
