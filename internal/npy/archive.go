package npy

import (
	"archive/zip"
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/born-ml/numpy/internal/tensor"
)

// LoadArchive reads every array of the .npz archive at filename, keyed by member
// name without the .npy extension.
func LoadArchive(filename string) (map[string]*tensor.NdArray, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() { _ = zr.Close() }()

	arrays, err := readArchive(&zr.Reader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return arrays, nil
}

// ReadArchive reads every array of a .npz archive of the given size.
func ReadArchive(r io.ReaderAt, size int64) (map[string]*tensor.NdArray, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	return readArchive(zr)
}

func readArchive(zr *zip.Reader) (map[string]*tensor.NdArray, error) {
	arrays := make(map[string]*tensor.NdArray, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if path.Ext(f.Name) != ".npy" {
			slog.Debug("npy: skipping archive member", "name", f.Name)
			continue
		}
		a, err := readMember(f)
		if err != nil {
			return nil, fmt.Errorf("member %s: %w", f.Name, err)
		}
		arrays[strings.TrimSuffix(f.Name, ".npy")] = a
	}
	return arrays, nil
}

func readMember(f *zip.File) (*tensor.NdArray, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return Read(bufio.NewReader(rc), ReadOptions{})
}

// SaveArchive writes arrays to an uncompressed .npz archive at filename. Members
// are written in name order.
func SaveArchive(filename string, arrays map[string]*tensor.NdArray) error {
	//nolint:gosec // G304: saving to a caller-named file is the purpose of SaveArchive.
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := WriteArchive(f, arrays); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// WriteArchive writes arrays to w as an uncompressed .npz archive.
func WriteArchive(w io.Writer, arrays map[string]*tensor.NdArray) error {
	zw := zip.NewWriter(w)
	for _, name := range slices.Sorted(maps.Keys(arrays)) {
		mw, err := zw.CreateHeader(&zip.FileHeader{Name: name + ".npy", Method: zip.Store})
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", name, err)
		}
		if err := Write(mw, arrays[name]); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return zw.Close()
}
