// Package loader reads and writes arrays in NumPy's .npy and .npz formats.
//
// This package wraps the internal npy implementation and exports a clean
// public API.
//
// Example usage:
//
//	import (
//	    "github.com/born-ml/numpy/loader"
//	    "github.com/born-ml/numpy/np"
//	)
//
//	a, err := loader.Load("weights.npy")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(a, a.Dumps())
//
//	arrays, err := loader.LoadArchive("checkpoint.npz")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for name, arr := range arrays {
//	    fmt.Println(name, arr)
//	}
package loader

import (
	"io"

	"github.com/born-ml/numpy/internal/npy"
	"github.com/born-ml/numpy/np"
)

// Header is the decoded .npy header: descr, fortran_order and shape.
type Header = npy.Header

// ReadOptions configures Read.
type ReadOptions = npy.ReadOptions

// Format errors. ErrInvalidMagic, ErrUnsupportedVersion, ErrFortranOrder and
// ErrHeaderTooLarge all wrap ErrFormat.
var (
	ErrFormat             = npy.ErrFormat
	ErrInvalidMagic       = npy.ErrInvalidMagic
	ErrUnsupportedVersion = npy.ErrUnsupportedVersion
	ErrFortranOrder       = npy.ErrFortranOrder
	ErrHeaderTooLarge     = npy.ErrHeaderTooLarge
)

// Parse decodes a .npy file held in memory.
//
// Example:
//
//	data, _ := os.ReadFile("a.npy")
//	a, err := loader.Parse(data)
func Parse(data []byte) (*np.NdArray, error) {
	return npy.Parse(data)
}

// Read decodes one array from r.
func Read(r io.Reader, opts ReadOptions) (*np.NdArray, error) {
	return npy.Read(r, opts)
}

// Load reads the .npy file at path.
func Load(path string) (*np.NdArray, error) {
	return npy.Load(path)
}

// LoadArchive reads every array of the .npz archive at path, keyed by name.
func LoadArchive(path string) (map[string]*np.NdArray, error) {
	return npy.LoadArchive(path)
}

// Write encodes a in .npy format.
func Write(w io.Writer, a *np.NdArray) error {
	return npy.Write(w, a)
}

// Save writes a to a .npy file at path.
func Save(path string, a *np.NdArray) error {
	return npy.Save(path, a)
}

// SaveArchive writes arrays to a .npz archive at path.
func SaveArchive(path string, arrays map[string]*np.NdArray) error {
	return npy.SaveArchive(path, arrays)
}
