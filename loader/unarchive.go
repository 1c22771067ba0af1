package loader

import (
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4"
)

// unpackArchive extracts a .zip, .gz or .lz4 dataset into a temp directory
// and returns the extracted path plus a cleanup func. Any other extension is
// passed through untouched. The source file is never modified.
func unpackArchive(filePath string) (string, func(), error) {
	noop := func() {}
	switch filepath.Ext(filePath) {
	case ".zip":
		return unpackZipArchive(filePath)
	case ".gz":
		return unpackStream(filePath, ".gz", func(r io.Reader) (io.Reader, error) {
			return gzip.NewReader(r)
		})
	case ".lz4":
		return unpackStream(filePath, ".lz4", func(r io.Reader) (io.Reader, error) {
			return lz4.NewReader(r), nil
		})
	}
	return filePath, noop, nil
}

// unpackZipArchive extracts the largest file of the archive, same rule the
// upload path always used: one dataset per archive, companions ignored.
func unpackZipArchive(filePath string) (string, func(), error) {
	noop := func() {}
	r, err := zip.OpenReader(filePath)
	if err != nil {
		return "", noop, fmt.Errorf("open zip %s: %v", filePath, err)
	}
	defer r.Close()

	var largest *zip.File
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if largest == nil || f.UncompressedSize64 > largest.UncompressedSize64 {
			largest = f
		}
	}
	if largest == nil {
		return "", noop, fmt.Errorf("zip %s holds no files", filePath)
	}

	dir, err := os.MkdirTemp("", "churn_unzip_")
	if err != nil {
		return "", noop, err
	}
	cleanup := func() { os.RemoveAll(dir) }

	destPath := filepath.Join(dir, filepath.Base(largest.Name))
	out, err := os.Create(destPath)
	if err != nil {
		cleanup()
		return "", noop, err
	}
	defer out.Close()
	rc, err := largest.Open()
	if err != nil {
		cleanup()
		return "", noop, err
	}
	defer rc.Close()
	if _, err := io.Copy(out, rc); err != nil {
		cleanup()
		return "", noop, fmt.Errorf("extract %s: %v", largest.Name, err)
	}
	return destPath, cleanup, nil
}

func unpackStream(filePath, ext string, wrap func(io.Reader) (io.Reader, error)) (string, func(), error) {
	noop := func() {}
	file, err := os.Open(filePath)
	if err != nil {
		return "", noop, err
	}
	defer file.Close()

	src, err := wrap(file)
	if err != nil {
		return "", noop, fmt.Errorf("open archive %s: %v", filePath, err)
	}

	dir, err := os.MkdirTemp("", "churn_unpack_")
	if err != nil {
		return "", noop, err
	}
	cleanup := func() { os.RemoveAll(dir) }

	destPath := filepath.Join(dir, strings.TrimSuffix(filepath.Base(filePath), ext))
	out, err := os.Create(destPath)
	if err != nil {
		cleanup()
		return "", noop, err
	}
	defer out.Close()
	if _, err := io.Copy(out, src); err != nil {
		cleanup()
		return "", noop, fmt.Errorf("extract %s: %v", filePath, err)
	}
	return destPath, cleanup, nil
}
