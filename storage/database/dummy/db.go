package dummydb

import (
	"sync"

	"github.com/zawyahq/zawya/core/idea"
	"github.com/zawyahq/zawya/core/post"
	"github.com/zawyahq/zawya/core/profile"
	"github.com/zawyahq/zawya/core/space"
)

type (
	DB struct {
		space   *spaceTable
		profile *profileTable
		post    *postTable
		idea    *ideaTable

		mutex        sync.Mutex
		nextWriteErr error
	}

	spaceTable struct {
		sync.RWMutex
		table map[string]*space.Space
	}

	profileTable struct {
		sync.RWMutex
		table map[string]*profile.Profile
	}

	postTable struct {
		sync.RWMutex
		table map[string]*post.Post
	}

	ideaTable struct {
		sync.RWMutex
		table map[string]*idea.Idea
	}
)

func Open() (*DB, error) {
	db := &DB{
		space:   &spaceTable{table: make(map[string]*space.Space)},
		profile: &profileTable{table: make(map[string]*profile.Profile)},
		post:    &postTable{table: make(map[string]*post.Post)},
		idea:    &ideaTable{table: make(map[string]*idea.Idea)},
	}
	return db, nil
}

// FailNextWrite makes the next mutating repository call fail with err,
// leaving all tables untouched. Lets tests simulate a document-store write
// failure and assert nothing was partially applied.
func (db *DB) FailNextWrite(err error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.nextWriteErr = err
}

func (db *DB) consumeWriteErr() error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	err := db.nextWriteErr
	db.nextWriteErr = nil
	return err
}
