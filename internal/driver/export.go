package driver

import (
	"errors"
	"fmt"
	"time"

	"qres/internal/pkgcache"
	"qres/internal/symbols"
)

// Export builds the interface of a resolved unit. requires lists the
// packages the unit was resolved against.
func Export(ur *UnitResult, name string, requires []string) (*pkgcache.Interface, error) {
	if ur == nil || ur.Unit == nil {
		return nil, errors.New("unit was not loaded")
	}
	if ur.Bag != nil && ur.Bag.HasErrors() {
		return nil, fmt.Errorf("%s: unit has resolution errors", ur.Path)
	}
	globals := symbols.ExportPackage(ur.Unit.Package, ur.Output.Names)
	return pkgcache.New(name, requires, globals)
}

// ExportTo writes the interface of ur to path.
func ExportTo(ur *UnitResult, name string, requires []string, path string, sink ProgressSink) error {
	started := time.Now()
	emit(sink, Event{Unit: ur.Path, Stage: StageExport, Status: StatusWorking})
	iface, err := Export(ur, name, requires)
	if err == nil {
		err = pkgcache.Write(path, iface)
	}
	if err != nil {
		emit(sink, Event{Unit: ur.Path, Stage: StageExport, Status: StatusError, Err: err, Elapsed: time.Since(started)})
		return err
	}
	emit(sink, Event{Unit: ur.Path, Stage: StageExport, Status: StatusDone, Elapsed: time.Since(started)})
	return nil
}
