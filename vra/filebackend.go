package vra

import (
	"os"

	"github.com/sirupsen/logrus"
)

// FileBackend is a thin [Backend] adapter over an *os.File. This is the
// one place in this package that does ambient logging: opening and
// flushing an on-disk archive are the operations an operator actually
// wants a trace of, unlike the purely in-memory [MemBackend].
type FileBackend struct {
	f *os.File
}

// OpenFileBackend opens (creating if necessary) path as a FileBackend.
func OpenFileBackend(path string) (*FileBackend, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		logrus.WithError(err).WithField("path", path).Error("vra: failed to open archive file")
		return nil, err
	}
	logrus.WithField("path", path).Debug("vra: archive file opened")
	return &FileBackend{f: f}, nil
}

func (fb *FileBackend) ReadAt(p []byte, off int64) (int, error) {
	return fb.f.ReadAt(p, off)
}

func (fb *FileBackend) WriteAt(p []byte, off int64) (int, error) {
	return fb.f.WriteAt(p, off)
}

func (fb *FileBackend) Length() (int64, error) {
	info, err := fb.f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (fb *FileBackend) Flush() error {
	err := fb.f.Sync()
	if err != nil {
		logrus.WithError(err).WithField("path", fb.f.Name()).Error("vra: failed to flush archive file")
		return err
	}
	logrus.WithField("path", fb.f.Name()).Debug("vra: archive file flushed")
	return nil
}

func (fb *FileBackend) Close() error {
	return fb.f.Close()
}
