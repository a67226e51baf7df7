// Package npy reads and writes arrays in NumPy's .npy format and .npz
// archives.
//
//	Format Structure:
//	  [6 bytes: Magic "\x93NUMPY"]
//	  [1 byte: Major version]
//	  [1 byte: Minor version]
//	  [2 or 4 bytes: Header length (LE), 4 bytes from version 2.0]
//	  [Header: Python dict literal, space padded, ending in '\n']
//	  [Array data: raw elements in C order]
//
// The header holds three keys:
//   - descr: byte order ('<', '>', '|' or '=') followed by a type code
//   - fortran_order: must be False, Fortran-ordered data is rejected
//   - shape: a tuple of dimension sizes, () for a scalar
//
// Example usage:
//
//	a, err := npy.Load("weights.npy")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	arrays, err := npy.LoadArchive("checkpoint.npz")
package npy
