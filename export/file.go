package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hydroscope/wellmix/compress"
)

// Create opens path for writing through the given codec. The codec's
// extension is appended to the path, so Create("out/estimates.csv", zstd)
// produces out/estimates.csv.zst. Parent directories are created as needed.
// Closing the returned writer flushes the codec and closes the file.
func Create(path string, codec compress.Codec) (io.WriteCloser, error) {
	path += codec.Extension()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}

	wc, err := codec.WrapWriter(f)
	if err != nil {
		f.Close()

		return nil, fmt.Errorf("failed to wrap %s with %s codec: %w", path, codec.Type(), err)
	}

	return &fileWriteCloser{wc: wc, f: f}, nil
}

// Open opens path for reading through the given codec, appending the
// codec's extension the same way Create does.
func Open(path string, codec compress.Codec) (io.ReadCloser, error) {
	path += codec.Extension()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	rc, err := codec.WrapReader(f)
	if err != nil {
		f.Close()

		return nil, fmt.Errorf("failed to wrap %s with %s codec: %w", path, codec.Type(), err)
	}

	return &fileReadCloser{rc: rc, f: f}, nil
}

// fileWriteCloser closes the codec stream before the underlying file so
// buffered frames are flushed to disk.
type fileWriteCloser struct {
	wc io.WriteCloser
	f  *os.File
}

func (c *fileWriteCloser) Write(p []byte) (int, error) {
	return c.wc.Write(p)
}

func (c *fileWriteCloser) Close() error {
	return errors.Join(c.wc.Close(), c.f.Close())
}

type fileReadCloser struct {
	rc io.ReadCloser
	f  *os.File
}

func (c *fileReadCloser) Read(p []byte) (int, error) {
	return c.rc.Read(p)
}

func (c *fileReadCloser) Close() error {
	return errors.Join(c.rc.Close(), c.f.Close())
}
