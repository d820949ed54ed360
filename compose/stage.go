package compose

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// Stager provides storage for attachment payloads while a message is written.
type Stager interface {
	// Open starts a staging area for one message.
	Open() (Staging, error)
}

// Staging is the storage for one message.
type Staging interface {
	// Stage stores content and returns a reader over it. The reader stays
	// valid until Release.
	Stage(filename string, content []byte) (io.Reader, error)

	// Release frees everything staged.
	Release() error
}

// MemoryStager keeps payloads in memory.
type MemoryStager struct{}

// Open returns a staging area that never fails.
func (MemoryStager) Open() (Staging, error) {
	return memoryStaging{}, nil
}

type memoryStaging struct{}

func (memoryStaging) Stage(_ string, content []byte) (io.Reader, error) {
	return bytes.NewReader(content), nil
}

func (memoryStaging) Release() error { return nil }

// TempDirStager writes each payload to a file in a fresh temporary directory
// and streams it back from disk. The directory is removed on Release.
type TempDirStager struct {
	// Dir is the parent of the staging directory. Empty means os.TempDir.
	Dir string
}

// Open creates the staging directory.
func (s TempDirStager) Open() (Staging, error) {
	dir, err := os.MkdirTemp(s.Dir, "mailsend-")
	if err != nil {
		return nil, err
	}
	return &tempDirStaging{dir: dir}, nil
}

type tempDirStaging struct {
	dir   string
	n     int
	files []*os.File
}

// Stage writes content to disk. Filenames are not used on disk so that two
// attachments with the same name do not collide.
func (s *tempDirStaging) Stage(_ string, content []byte) (io.Reader, error) {
	s.n++
	path := filepath.Join(s.dir, "part-"+strconv.Itoa(s.n))
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	s.files = append(s.files, f)
	return f, nil
}

func (s *tempDirStaging) Release() error {
	var errs []error
	for _, f := range s.files {
		errs = append(errs, f.Close())
	}
	s.files = nil
	errs = append(errs, os.RemoveAll(s.dir))
	return errors.Join(errs...)
}

// brokenStaging stands in when Open fails so that every attachment degrades
// to a placeholder instead of the whole message failing.
type brokenStaging struct {
	err error
}

func (b brokenStaging) Stage(string, []byte) (io.Reader, error) {
	return nil, b.err
}

func (brokenStaging) Release() error { return nil }
