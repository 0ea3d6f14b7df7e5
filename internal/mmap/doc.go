// Package mmap maps input files read-only into memory.
//
// Fingerprint files can be large and are scanned front to back once, so
// mapping them avoids an extra copy through a read buffer. Platforms
// without mmap(2) fall back to reading the file into memory.
//
//	m, err := mmap.Open("hashes.txt")
//	if err != nil { ... }
//	defer m.Close()
//	_ = m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
package mmap
