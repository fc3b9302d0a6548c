// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tfctl/clstrctl/internal/log"
)

// Stdin is the input name that reads standard input.
const Stdin = "-"

// Opener resolves input names to readers. The zero value reads local files
// and os.Stdin and builds its S3 client from the environment on first use.
type Opener struct {
	// Stdin replaces os.Stdin for the "-" input when non-nil.
	Stdin io.Reader
	// NewS3 builds the client used for s3:// inputs. Nil means
	// NewS3FromConfig.
	NewS3 func(ctx context.Context) (ObjectClient, error)

	s3 ObjectClient
}

// Open is Opener{}.Open.
func Open(ctx context.Context, name string) (io.ReadCloser, error) {
	var o Opener
	return o.Open(ctx, name)
}

// Open returns a reader over the named input: "-" for stdin, s3://bucket/key
// for an S3 object, otherwise a local path. Names ending in ".gz" are
// decompressed.
func (o *Opener) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	var (
		rc  io.ReadCloser
		err error
	)

	switch {
	case name == Stdin:
		in := o.Stdin
		if in == nil {
			in = os.Stdin
		}
		rc = io.NopCloser(in)
	case strings.HasPrefix(name, s3Scheme):
		rc, err = o.openS3(ctx, name)
	default:
		rc, err = OpenFile(name)
	}
	if err != nil {
		return nil, err
	}
	log.Debugf("opened input: name=%s", name)

	if !strings.HasSuffix(name, ".gz") {
		return rc, nil
	}

	zr, err := gzip.NewReader(rc)
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("failed to open gzip stream %s: %w", name, err)
	}
	return &gzipReadCloser{Reader: zr, under: rc}, nil
}

// OpenFile opens a local file for reading, rejecting directories.
func OpenFile(path string) (io.ReadCloser, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("input cannot be a directory: %s", path)
	}
	return os.Open(path)
}

type gzipReadCloser struct {
	*gzip.Reader
	under io.Closer
}

func (g *gzipReadCloser) Close() error {
	err := g.Reader.Close()
	if cerr := g.under.Close(); err == nil {
		err = cerr
	}
	return err
}

// CountingReader counts the bytes read through it.
type CountingReader struct {
	R io.Reader
	N int64
}

func (c *CountingReader) Read(p []byte) (int, error) {
	n, err := c.R.Read(p)
	c.N += int64(n)
	return n, err
}
