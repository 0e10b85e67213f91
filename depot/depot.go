// Package depot provides durable, named storage for gritvm listings.
//
// Listings are validated with the vm parser before they are stored, so
// anything fetched from a Depot can be loaded into a Machine.
package depot

import (
	"errors"
	"log"
	"sort"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/ezrec/gritvm/vm"
)

// PROGRAM_PREFIX is the key prefix of stored listings.
const PROGRAM_PREFIX = "program/"

// Depot is a leveldb backed program store.
type Depot struct {
	Verbose bool // If set, logs store and delete actions.

	db *leveldb.DB
}

// Open opens, or creates, a depot in a directory.
func Open(path string) (depot *Depot, err error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return
	}

	depot = &Depot{db: db}
	return
}

// OpenMemory opens a depot that is discarded on Close.
func OpenMemory() (depot *Depot, err error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return
	}

	depot = &Depot{db: db}
	return
}

// Close the depot.
func (dp *Depot) Close() error {
	return dp.db.Close()
}

func programKey(name string) []byte {
	return []byte(PROGRAM_PREFIX + name)
}

// Store saves a listing under a name, replacing any previous listing.
// Listings that do not parse, or that contain no instructions, are rejected.
func (dp *Depot) Store(name string, listing string) (err error) {
	if len(name) == 0 {
		err = ErrNameInvalid
		return
	}

	prog, err := vm.Parse(listing)
	if err != nil {
		return
	}
	if prog.Empty() {
		err = ErrProgramEmpty
		return
	}

	if dp.Verbose {
		log.Printf("depot: store %v (%v instructions)", name, prog.Len())
	}

	err = dp.db.Put(programKey(name), []byte(listing), nil)
	return
}

// Fetch returns the listing stored under a name.
func (dp *Depot) Fetch(name string) (listing string, err error) {
	data, err := dp.db.Get(programKey(name), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		err = ErrProgramMissing(name)
		return
	}
	if err != nil {
		return
	}

	listing = string(data)
	return
}

// Program fetches and parses the listing stored under a name.
func (dp *Depot) Program(name string) (prog *vm.Program, err error) {
	listing, err := dp.Fetch(name)
	if err != nil {
		return
	}

	return vm.Parse(listing)
}

// Delete removes a listing. Deleting a missing name is not an error.
func (dp *Depot) Delete(name string) (err error) {
	if dp.Verbose {
		log.Printf("depot: delete %v", name)
	}

	return dp.db.Delete(programKey(name), nil)
}

// Names returns the sorted names of all stored listings.
func (dp *Depot) Names() (names []string, err error) {
	iter := dp.db.NewIterator(util.BytesPrefix([]byte(PROGRAM_PREFIX)), nil)
	defer iter.Release()

	for iter.Next() {
		names = append(names, string(iter.Key()[len(PROGRAM_PREFIX):]))
	}

	err = iter.Error()
	if err != nil {
		names = nil
		return
	}

	sort.Strings(names)
	return
}
