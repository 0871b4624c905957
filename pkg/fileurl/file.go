package fileurl

import (
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IsDir determines if the given path is a directory
func IsDir(path string) bool {
	s, err := os.Stat(path)
	if err != nil {
		return false
	}
	return s.IsDir()
}

// IsFile determines if the given path is a file
func IsFile(path string) bool {
	return !IsDir(path)
}

// GetFileExt gets file extension
func GetFileExt(name string) string {
	return path.Ext(name)
}

// GetFileNameOrRandom keeps the upload name, replacing the clipboard
// default "image.png" with a random one to avoid collisions.
func GetFileNameOrRandom(fileName string) string {
	if fileName == "image.png" {
		fileName = uuid.New().String() + GetFileExt(fileName)
	}
	return filepath.Base(fileName)
}

// GetDatePath gets date save path
func GetDatePath(timeFormat string) string {
	if timeFormat == "" {
		timeFormat = "200601/02"
	}
	return PathSuffixCheckAdd(time.Now().Format(timeFormat), "/")
}

// IsExist determines if the given path exists
func IsExist(dst string) bool {
	_, err := os.Stat(dst)
	if err != nil {
		return os.IsExist(err)
	}
	return true
}

// IsPermission checks file permissions
func IsPermission(dst string) bool {
	_, err := os.Stat(dst)
	return os.IsPermission(err)
}

// CreatePath creates the parent directory of dst
func CreatePath(dst string, perm os.FileMode) error {
	return os.MkdirAll(filepath.Dir(dst), perm)
}

// GetExePath gets the directory of the current executable
func GetExePath() string {
	file, _ := exec.LookPath(os.Args[0])
	p, _ := filepath.Abs(file)
	index := strings.LastIndex(p, string(os.PathSeparator))
	return p[:index]
}

// PathSuffixCheckAdd checks path suffix, adds it if missing
func PathSuffixCheckAdd(path string, suffix string) string {
	if !strings.HasSuffix(path, suffix) {
		path = path + suffix
	}
	return path
}

// IsAbsPath determines if the path is absolute
func IsAbsPath(path string) bool {
	if runtime.GOOS == "windows" {
		if filepath.VolumeName(path) != "" {
			return true
		}
		return strings.HasPrefix(path, `\\`)
	}
	return filepath.IsAbs(path)
}
