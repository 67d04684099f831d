package fs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Local struct {
	http.FileSystem

	hostname string
	rootDir  string
}

var _ Storage = (*Local)(nil)

// NewLocal creates storage rooted at rootDir. Files are linked as hostname + prefix + name.
func NewLocal(rootDir string, hostname string, prefix string) (*Local, error) {
	if hostname == "" {
		return nil, errors.New("hostname can't be empty")
	}

	hostname = strings.TrimSuffix(hostname, "/")
	if !strings.HasPrefix(hostname, "http") {
		hostname = fmt.Sprintf("http://%s", hostname)
	}

	if prefix = strings.Trim(prefix, "/"); prefix != "" {
		hostname = hostname + "/" + prefix
	}

	return &Local{FileSystem: http.Dir(rootDir), rootDir: rootDir, hostname: hostname}, nil
}

func (l *Local) Create(_ context.Context, name string, reader io.Reader) (int64, error) {
	var (
		logger = log.WithField("file", name)
		path   = filepath.Join(l.rootDir, filepath.FromSlash(name))
		dir    = filepath.Dir(path)
	)

	logger.Debugf("creating directory: %s", dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, errors.Wrapf(err, "failed to create dir: %s", dir)
	}

	written, err := l.copyFile(reader, path)
	if err != nil {
		return 0, errors.Wrap(err, "failed to copy file")
	}

	logger.Debugf("written %d bytes", written)
	return written, nil
}

func (l *Local) Delete(_ context.Context, name string) error {
	path := filepath.Join(l.rootDir, filepath.FromSlash(name))
	return os.Remove(path)
}

func (l *Local) URL(_ context.Context, name string) (string, error) {
	if _, err := Size(l, name); err != nil {
		return "", errors.Wrap(err, "failed to check whether file exists")
	}

	return fmt.Sprintf("%s/%s", l.hostname, strings.TrimPrefix(name, "/")), nil
}

// copyFile writes to a temporary file first so the HTTP server never serves a partial document.
func (l *Local) copyFile(source io.Reader, destinationPath string) (int64, error) {
	dest, err := os.CreateTemp(filepath.Dir(destinationPath), ".tmp-*")
	if err != nil {
		return 0, errors.Wrap(err, "failed to create temporary file")
	}

	tmpPath := dest.Name()
	defer os.Remove(tmpPath)

	written, err := io.Copy(dest, source)
	if err != nil {
		dest.Close()
		return 0, errors.Wrap(err, "failed to copy data")
	}

	if err := dest.Close(); err != nil {
		return 0, errors.Wrap(err, "failed to close temporary file")
	}

	if err := os.Chmod(tmpPath, 0644); err != nil {
		return 0, errors.Wrap(err, "failed to chmod file")
	}

	if err := os.Rename(tmpPath, destinationPath); err != nil {
		return 0, errors.Wrap(err, "failed to move file into place")
	}

	return written, nil
}
