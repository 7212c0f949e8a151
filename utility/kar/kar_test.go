// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package kar_test

import (
	"bytes"
	"errors"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/devblok/korugfx/utility/kar"
)

var (
	testString1 = "idunvovkjnreovmegihjbrqlkmfrjnb"
	testString2 = "idunvovkjnreovmsdvwrvnervnreegihjbrqlkmfrjnb"
)

func buildArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	builder, err := kar.NewBuilder(kar.Header{
		Author:      "devblok",
		DateCreated: time.Now().Unix(),
		Version:     1,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer builder.Close()

	for name, contents := range files {
		if err := builder.Add(name, strings.NewReader(contents)); err != nil {
			t.Fatal(err)
		}
	}

	buf := bytes.NewBuffer([]byte{})
	written, err := builder.WriteTo(buf)
	if err != nil {
		t.Fatal(err)
	}
	if written != int64(buf.Len()) {
		t.Errorf("reported %d bytes written, buffer holds %d", written, buf.Len())
	}
	if builder.Len() != 0 {
		t.Error("builder not emptied after WriteTo")
	}
	return buf.Bytes()
}

func TestCreateAndRead(t *testing.T) {
	data := buildArchive(t, map[string]string{"test": testString1, "test2": testString2})

	ar, err := kar.Open(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}

	f, err := ar.Open("test2")
	if err != nil {
		t.Fatal(err)
	}

	result := make([]byte, len(testString2))
	if _, err := io.ReadFull(f, result); err != nil {
		t.Fatal(err)
	}
	if string(result) != testString2 {
		t.Error("test string does not match up")
	}
}

func TestCreateAndReadAll(t *testing.T) {
	data := buildArchive(t, map[string]string{"test": testString1, "test2": testString2})

	ar, err := kar.Open(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}

	for name, expected := range map[string]string{"test": testString1, "test2": testString2} {
		f, err := ar.ReadAll(name)
		if err != nil {
			t.Error(err)
		} else if string(f) != expected {
			t.Errorf("%s: test string does not match up", name)
		}
	}

	header := ar.Header()
	if header.Author != "devblok" || header.Version != 1 {
		t.Errorf("header not preserved: %+v", header)
	}
	if names := ar.Names(); len(names) != 2 || names[0] != "test" || names[1] != "test2" {
		t.Errorf("unexpected names %v", names)
	}
}

func TestEmptyEntry(t *testing.T) {
	data := buildArchive(t, map[string]string{"empty": "", "test": testString1})
	ar, err := kar.Open(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if f, err := ar.ReadAll("empty"); err != nil || len(f) != 0 {
		t.Errorf("expected empty file, got %q, %v", f, err)
	}
}

func TestFileNotFound(t *testing.T) {
	data := buildArchive(t, map[string]string{"test": testString1})
	ar, err := kar.Open(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ar.Find("missing"); !errors.Is(err, kar.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDuplicateName(t *testing.T) {
	builder, err := kar.NewBuilder(kar.Header{})
	if err != nil {
		t.Fatal(err)
	}
	defer builder.Close()
	if err := builder.Add("test", strings.NewReader(testString1)); err != nil {
		t.Fatal(err)
	}
	if err := builder.Add("test", strings.NewReader(testString2)); err == nil {
		t.Error("duplicate name accepted")
	}
}

func TestCorruptedArchive(t *testing.T) {
	data := buildArchive(t, map[string]string{"test": testString1})

	badMagic := append([]byte{}, data...)
	badMagic[0] = 'T'

	badSize := append([]byte{}, data...)
	for i := kar.MagicLength; i < kar.MagicLength+kar.HeaderSizeNumberLength; i++ {
		badSize[i] = 0xff
	}

	for name, bts := range map[string][]byte{
		"magic":     badMagic,
		"size":      badSize,
		"truncated": data[:kar.MagicLength+kar.HeaderSizeNumberLength+3],
		"empty":     {},
	} {
		if _, err := kar.Open(bytes.NewReader(bts)); !errors.Is(err, kar.ErrFileFormat) {
			t.Errorf("%s: expected ErrFileFormat, got %v", name, err)
		}
	}
}

func TestConcurrentReads(t *testing.T) {
	data := buildArchive(t, map[string]string{"test": testString1, "test2": testString2})
	ar, err := kar.Open(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name, expected := "test", testString1
			if i%2 == 1 {
				name, expected = "test2", testString2
			}
			if s, err := ar.FindString(name); err != nil || s != expected {
				t.Errorf("%s: got %q, %v", name, s, err)
			}
		}(i)
	}
	wg.Wait()
}

func TestOpenFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "kartest")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "opentest.kar")
	data := buildArchive(t, map[string]string{
		"test/test1.txt": "this is a test",
		"test/test2.txt": "this is another test",
	})
	if err := ioutil.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	ar, err := kar.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer ar.Close()

	if f, err := ar.ReadAll("test/test2.txt"); err != nil {
		t.Error(err)
	} else if string(f) != "this is another test" {
		t.Error("result is not expected value")
	}
}

func BenchmarkReadAll(b *testing.B) {
	builder, err := kar.NewBuilder(kar.Header{})
	if err != nil {
		b.Fatal(err)
	}
	defer builder.Close()
	builder.Add("bench", bytes.NewReader(bytes.Repeat([]byte(testString2), 4096)))
	buf := bytes.NewBuffer([]byte{})
	if _, err := builder.WriteTo(buf); err != nil {
		b.Fatal(err)
	}
	ar, err := kar.Open(bytes.NewReader(buf.Bytes()))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ar.ReadAll("bench"); err != nil {
			b.Fatal(err)
		}
	}
}
