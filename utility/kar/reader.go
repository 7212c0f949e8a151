// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package kar

import (
	"fmt"
	"io"
	"io/ioutil"
	"sort"

	"github.com/gobuffalo/packd"
	"github.com/pierrec/lz4"
	"golang.org/x/exp/mmap"
)

var _ packd.Finder = (*Archive)(nil)

// Open opens the kar archived from r. It will also check
// if the file is actually a kar archive, will return ErrFileFormat
// when the file is incorrect.
func Open(r io.ReaderAt) (*Archive, error) {
	preamble := make([]byte, preambleLength)
	if num, err := r.ReadAt(preamble, 0); num < preambleLength {
		return nil, fmt.Errorf("%w: short preamble: %v", ErrFileFormat, err)
	}
	if string(preamble[:MagicLength]) != Magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrFileFormat, preamble[:MagicLength])
	}

	headerSize, err := binaryToInt64(preamble[MagicLength:])
	if err != nil {
		return nil, err
	}
	if headerSize <= 0 || headerSize > 1<<30 {
		return nil, fmt.Errorf("%w: header size %d", ErrFileFormat, headerSize)
	}

	headerBytes := make([]byte, headerSize)
	if num, err := r.ReadAt(headerBytes, int64(preambleLength)); int64(num) < headerSize {
		return nil, fmt.Errorf("%w: short header: %v", ErrFileFormat, err)
	}

	ar := Archive{
		reader: r,
		base:   int64(preambleLength) + headerSize,
		index:  make(map[string]IndexEntry),
	}
	if err := gobDecode(&ar.header, headerBytes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileFormat, err)
	}
	for _, e := range ar.header.Index {
		ar.index[e.Name] = e
	}
	return &ar, nil
}

// OpenFile memory maps the archive at path. The returned
// Archive must be closed.
func OpenFile(path string) (*Archive, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	ar, err := Open(m)
	if err != nil {
		m.Close()
		return nil, err
	}
	ar.closer = m
	return ar, nil
}

// Archive provides concurrent io for a kar file, and can provide
// an io.Reader for each file separately to perform actions on.
type Archive struct {
	reader io.ReaderAt
	closer io.Closer
	base   int64
	header Header
	index  map[string]IndexEntry
}

// Header returns the archive header, including its index.
func (a *Archive) Header() Header {
	return a.header
}

// Names lists the archived file names in sorted order.
func (a *Archive) Names() []string {
	names := make([]string, 0, len(a.index))
	for name := range a.index {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open returns a Reader for a file in the Archive
func (a *Archive) Open(name string) (*Reader, error) {
	entry, ok := a.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	section := io.NewSectionReader(a.reader, a.base+entry.Offset, entry.CompressedSize)
	return &Reader{
		Entry:  entry,
		reader: lz4.NewReader(section),
	}, nil
}

// ReadAll returns the entire contents of a file with a given name
func (a *Archive) ReadAll(name string) ([]byte, error) {
	r, err := a.Open(name)
	if err != nil {
		return nil, err
	}
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileFormat, name, err)
	}
	if int64(len(data)) != r.Entry.Size {
		return nil, fmt.Errorf("%w: %s: expected %d bytes, got %d", ErrFileFormat, name, r.Entry.Size, len(data))
	}
	return data, nil
}

// Find implements packd.Finder.
func (a *Archive) Find(name string) ([]byte, error) {
	return a.ReadAll(name)
}

// FindString implements packd.Finder.
func (a *Archive) FindString(name string) (string, error) {
	data, err := a.ReadAll(name)
	return string(data), err
}

// Close releases the memory mapping, if any.
func (a *Archive) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// Reader is a reader for a single file in an Archive.
// Abstracts away the location that needs to be known.
type Reader struct {
	Entry IndexEntry

	reader io.Reader
}

// Read reads already decompressed data
func (r *Reader) Read(p []byte) (n int, err error) {
	return r.reader.Read(p)
}
