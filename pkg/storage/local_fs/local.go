package local_fs

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/skyring/file-explorer-service/pkg/fileurl"

	"github.com/pkg/errors"
)

type Config struct {
	IsEnabled  bool   `yaml:"is-enable" default:"true"`
	SavePath   string `yaml:"save-path" default:"storage/exports"`
	CustomPath string `yaml:"custom-path"`
}

type LocalFS struct {
	Config *Config
}

func NewClient(conf *Config) (*LocalFS, error) {
	if conf.SavePath == "" {
		conf.SavePath = "storage/exports"
	}
	return &LocalFS{Config: conf}, nil
}

func (p *LocalFS) getSavePath() string {
	return fileurl.PathSuffixCheckAdd(p.Config.SavePath, "/") + p.Config.CustomPath
}

// SendFile writes the reader to SavePath/CustomPath/fileKey, creating
// parent directories as needed.
func (p *LocalFS) SendFile(fileKey string, file io.Reader, cType string, modTime time.Time) (string, error) {

	dstFileKey := fileurl.PathSuffixCheckAdd(p.getSavePath(), "/") + fileKey

	if err := fileurl.CreatePath(dstFileKey, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	out, err := os.Create(dstFileKey)
	if err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	if !modTime.IsZero() {
		_ = os.Chtimes(dstFileKey, modTime, modTime)
	}

	return fileKey, nil
}

func (p *LocalFS) SendContent(fileKey string, content []byte, modTime time.Time) (string, error) {

	dstFileKey := fileurl.PathSuffixCheckAdd(p.getSavePath(), "/") + fileKey

	if err := fileurl.CreatePath(dstFileKey, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	if err := os.WriteFile(dstFileKey, content, 0644); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	if !modTime.IsZero() {
		_ = os.Chtimes(dstFileKey, modTime, modTime)
	}

	return fileKey, nil
}

func (p *LocalFS) Delete(fileKey string) error {
	dstFileKey := filepath.Join(p.getSavePath(), fileKey)
	if fileurl.IsExist(dstFileKey) {
		return os.Remove(dstFileKey)
	}
	return nil
}
