package util

import (
	"crypto/md5"
	"encoding/hex"
)

// EncodeMD5 returns the hex MD5 digest of str
func EncodeMD5(str string) string {
	h := md5.New()
	h.Write([]byte(str))
	return hex.EncodeToString(h.Sum(nil))
}
