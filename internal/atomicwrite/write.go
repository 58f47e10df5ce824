// Package atomicwrite provides functions to write files atomically.
package atomicwrite

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// The permissions given to files that didn't exist before Write.
const defaultPerms os.FileMode = 0644

// Write atomically overwrites the file at filename with the content written by the
// given function.
// The file is created if it doesn't already exist; if it does, its permissions are kept.
func Write(filename string, contentWriter func(io.Writer) error) error {
	perms := defaultPerms
	if info, err := os.Stat(filename); err == nil {
		perms = info.Mode().Perm()
	}
	tf, err := os.CreateTemp(filepath.Dir(filename), ".cshl-atomic-write")
	if err != nil {
		return errors.Wrap(err, errString(filename))
	}
	name := tf.Name()
	if err = contentWriter(tf); err != nil {
		tf.Close()
		os.Remove(name)
		return errors.Wrap(err, errString(filename))
	}
	if err = tf.Chmod(perms); err != nil {
		tf.Close()
		os.Remove(name)
		return errors.Wrap(err, errString(filename))
	}
	if err = tf.Close(); err != nil {
		os.Remove(name)
		return errors.Wrap(err, errString(filename))
	}
	if err = os.Rename(name, filename); err != nil {
		os.Remove(name)
		return errors.Wrap(err, errString(filename))
	}
	return nil
}

func errString(filename string) string { return "atomic write to " + filename + " failed" }
