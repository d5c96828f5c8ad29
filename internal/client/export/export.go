// Package export stores downloaded documents either in a local directory
// or in an S3 bucket.
package export

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/admissions/internal/filex"
)

// Sink stores one document and returns where it was written.
type Sink interface {
	Put(ctx context.Context, name, contentType string, size int64, body io.Reader) (string, error)
}

// Open returns the sink for dest: "s3://bucket/prefix" or a directory path.
func Open(ctx context.Context, dest string, cfg S3Config) (Sink, error) {
	if strings.HasPrefix(dest, "s3://") {
		u, err := url.Parse(dest)
		if err != nil {
			return nil, fmt.Errorf("parse destination: %w", err)
		}
		if u.Host == "" {
			return nil, fmt.Errorf("destination %q has no bucket", dest)
		}
		return NewS3Sink(ctx, cfg, u.Host, strings.Trim(u.Path, "/"))
	}
	if dest == "" {
		dest = "."
	}
	return FileSink{Dir: dest}, nil
}

// FileSink writes documents into Dir, replacing files of the same name.
type FileSink struct {
	Dir string
}

func (s FileSink) Put(_ context.Context, name, _ string, _ int64, body io.Reader) (string, error) {
	target := filepath.Join(s.Dir, safeName(name))
	if err := filex.EnsureParentDir(target); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".download-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write %s: %w", target, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", target, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("rename to %s: %w", target, err)
	}
	return target, nil
}

// safeName keeps only the last path element of a server supplied name.
func safeName(name string) string {
	name = filepath.Base(filepath.Clean("/" + strings.ReplaceAll(name, "\\", "/")))
	if name == "/" || name == "." || name == "" {
		return "document"
	}
	return name
}
