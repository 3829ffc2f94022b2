// Package pkgcache stores package interfaces: the globals a resolved package
// exports, written by `qres export` and read back when the package is a
// dependency of a later compilation.
package pkgcache

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"slices"

	"github.com/vmihailenco/msgpack/v5"

	"qres/internal/project"
	"qres/internal/symbols"
)

// Current schema version - increment when Interface format changes
const SchemaVersion uint16 = 1

// Ext is the conventional interface file extension.
const Ext = ".qri"

var (
	ErrSchema = errors.New("unsupported interface schema")
	ErrDigest = errors.New("interface digest mismatch")
)

// Interface is the on-disk form of an exported package.
type Interface struct {
	Schema   uint16           `msgpack:"schema"`
	Name     string           `msgpack:"name"`
	Requires []string         `msgpack:"requires,omitempty"`
	Globals  []symbols.Global `msgpack:"globals"`
	Digest   project.Digest   `msgpack:"digest"`
}

type digestInput struct {
	Name     string           `msgpack:"name"`
	Requires []string         `msgpack:"requires"`
	Globals  []symbols.Global `msgpack:"globals"`
}

// New builds an interface and seals it with a content digest.
func New(name string, requires []string, globals []symbols.Global) (*Interface, error) {
	reqs := slices.Clone(requires)
	slices.Sort(reqs)
	reqs = slices.Compact(reqs)
	iface := &Interface{
		Schema:   SchemaVersion,
		Name:     name,
		Requires: reqs,
		Globals:  globals,
	}
	digest, err := iface.computeDigest()
	if err != nil {
		return nil, err
	}
	iface.Digest = digest
	return iface, nil
}

func (i *Interface) computeDigest() (project.Digest, error) {
	data, err := msgpack.Marshal(digestInput{Name: i.Name, Requires: i.Requires, Globals: i.Globals})
	if err != nil {
		return project.Digest{}, fmt.Errorf("encode interface %q: %w", i.Name, err)
	}
	return project.Sum(data), nil
}

// All yields the exported globals in declaration order.
func (i *Interface) All() iter.Seq[symbols.Global] {
	return slices.Values(i.Globals)
}

// Write serializes iface to path, replacing the file atomically.
func Write(path string, iface *Interface) (err error) {
	if iface == nil {
		return errors.New("nil interface")
	}
	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*"+Ext)
	if err != nil {
		return err
	}
	// после успешного Rename файла уже нет, ошибку удаления игнорируем
	defer func() {
		if removeErr := os.Remove(f.Name()); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) && err == nil {
			err = removeErr
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err = enc.Encode(iface); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode interface %q: %w", iface.Name, err)
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), path)
}

// Load reads and verifies an interface file. Missing files are reported
// with an error satisfying errors.Is(err, os.ErrNotExist).
func Load(path string) (*Interface, error) {
	// #nosec G304 -- path comes from the project manifest
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var iface Interface
	if err := msgpack.NewDecoder(f).Decode(&iface); err != nil {
		return nil, fmt.Errorf("%s: decode interface: %w", path, err)
	}
	if iface.Schema != SchemaVersion {
		return nil, fmt.Errorf("%s: %w %d (want %d)", path, ErrSchema, iface.Schema, SchemaVersion)
	}
	digest, err := iface.computeDigest()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if digest != iface.Digest {
		return nil, fmt.Errorf("%s: %w", path, ErrDigest)
	}
	return &iface, nil
}
