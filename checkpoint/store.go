package checkpoint

import (
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"

	"github.com/TopiaNetwork/topia-costmodel/codec"
	tpcmm "github.com/TopiaNetwork/topia-costmodel/common"
	tplog "github.com/TopiaNetwork/topia-costmodel/log"
	txbasic "github.com/TopiaNetwork/topia-costmodel/transaction"
)

var (
	latestSnapshotKey = []byte("cost_table/latest")
	versionKey        = []byte("cost_table/version")
)

// CheckpointStore persists cost table snapshots to durable storage so a
// restarted node prices programs from observed history instead of the
// built-in baseline alone.
type CheckpointStore struct {
	log       tplog.Logger
	db        *badger.DB
	marshaler codec.Marshaler
}

func NewCheckpointStore(log tplog.Logger, name string, path string) (*CheckpointStore, error) {
	pathWithName := filepath.Join(path, name+".db")
	if err := os.MkdirAll(pathWithName, 0755); err != nil {
		log.Errorf("Can't create the path %s: %v", pathWithName, err)
		return nil, err
	}

	opts := badger.DefaultOptions(pathWithName)
	opts.SyncWrites = false
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		log.Errorf("Can't open badger: path=%s, err=%v", pathWithName, err)
		return nil, err
	}

	return &CheckpointStore{
		log:       log,
		db:        db,
		marshaler: codec.CreateMarshaler(codec.CodecType_JSON),
	}, nil
}

// Save writes snapshot as the latest checkpoint and returns the new
// checkpoint version.
func (s *CheckpointStore) Save(snapshot map[txbasic.Address]uint64) (uint64, error) {
	snapshotBytes, err := s.marshaler.Marshal(snapshot)
	if err != nil {
		s.log.Errorf("Marshal cost table snapshot err: %v", err)
		return 0, err
	}

	var version uint64
	err = s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(versionKey)
		switch err {
		case nil:
			verBytes, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			version = tpcmm.BytesToUint64(verBytes)
		case badger.ErrKeyNotFound:
		default:
			return err
		}

		version++
		if err := txn.Set(versionKey, tpcmm.Uint64ToBytes(version)); err != nil {
			return err
		}

		return txn.Set(latestSnapshotKey, snapshotBytes)
	})
	if err != nil {
		s.log.Errorf("Save cost table snapshot err: %v", err)
		return 0, err
	}

	return version, nil
}

// Load returns the latest checkpointed snapshot and its version, or a nil
// map when no checkpoint exists yet.
func (s *CheckpointStore) Load() (map[txbasic.Address]uint64, uint64, error) {
	var (
		snapshotBytes []byte
		version       uint64
	)
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(latestSnapshotKey)
		if err == badger.ErrKeyNotFound {
			return nil
		} else if err != nil {
			return err
		}

		snapshotBytes, err = item.ValueCopy(nil)
		if err != nil {
			return err
		}

		verItem, err := txn.Get(versionKey)
		if err != nil {
			return err
		}
		verBytes, err := verItem.ValueCopy(nil)
		if err != nil {
			return err
		}
		version = tpcmm.BytesToUint64(verBytes)

		return nil
	})
	if err != nil {
		s.log.Errorf("Load cost table snapshot err: %v", err)
		return nil, 0, err
	}

	if snapshotBytes == nil {
		return nil, 0, nil
	}

	snapshot := make(map[txbasic.Address]uint64)
	if err := s.marshaler.Unmarshal(snapshotBytes, &snapshot); err != nil {
		s.log.Errorf("Unmarshal cost table snapshot err: %v", err)
		return nil, 0, err
	}

	return snapshot, version, nil
}

func (s *CheckpointStore) Close() error {
	return s.db.Close()
}
