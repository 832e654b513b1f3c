package store

import (
	"errors"
	"io/fs"
	"time"

	bolt "go.etcd.io/bbolt"
)

var errAlreadyRunning = errors.New(
	"is traytime already running? Only one instance can be active at a time",
)

var (
	stateBucket = []byte("state")
	trackerKey  = []byte("tracker")
)

// StateClient persists tracker snapshots in a BoltDB file.
type StateClient struct {
	*bolt.DB
}

// NewStateClient opens the snapshot store, creating the state bucket if it
// does not exist. The file lock doubles as a guard against a second live
// instance.
func NewStateClient(path string) (*StateClient, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		path,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errAlreadyRunning
		}

		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(stateBucket)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &StateClient{db}, nil
}

func (c *StateClient) Save(snapshot []byte) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(stateBucket).Put(trackerKey, snapshot)
	})
}

func (c *StateClient) Load() ([]byte, error) {
	var snapshot []byte

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(stateBucket).Get(trackerKey)
		if len(b) == 0 {
			return nil
		}

		snapshot = make([]byte, len(b))
		copy(snapshot, b)

		return nil
	})

	return snapshot, err
}
