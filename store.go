package lito

import (
	"strconv"
	"strings"

	"github.com/midbel/lito/environ"
	"github.com/midbel/lito/eval"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var globalsBucket = []byte("globals")

// Store persists top level bindings between sessions. One bucket, one
// entry per identifier, values encoded as tagged scalars.
type Store struct {
	db *bolt.DB
}

func OpenStore(file string) (*Store, error) {
	db, err := bolt.Open(file, 0600, nil)
	if err != nil {
		return nil, errors.Wrap(err, "open session store")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(globalsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "prepare session store")
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Put(ident string, obj eval.Object) error {
	raw, err := encodeObject(obj)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(globalsBucket).Put([]byte(ident), []byte(raw))
	})
}

func (s *Store) Get(ident string) (eval.Object, error) {
	var obj eval.Object
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(globalsBucket).Get([]byte(ident))
		if raw == nil {
			return errors.Wrap(environ.ErrNotDefined, ident)
		}
		var err error
		obj, err = decodeObject(string(raw))
		return err
	})
	return obj, err
}

// Load walks every stored binding in key order.
func (s *Store) Load(fn func(string, eval.Object)) error {
	return s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(globalsBucket).ForEach(func(k, v []byte) error {
			obj, err := decodeObject(string(v))
			if err != nil {
				return err
			}
			fn(string(k), obj)
			return nil
		})
	})
}

func encodeObject(obj eval.Object) (string, error) {
	switch v := obj.Raw().(type) {
	case int64:
		return "i:" + strconv.FormatInt(v, 10), nil
	case float64:
		return "r:" + strconv.FormatFloat(v, 'g', -1, 64), nil
	case bool:
		return "b:" + strconv.FormatBool(v), nil
	default:
		return "", errors.Errorf("%s can not be stored", obj.Type())
	}
}

func decodeObject(raw string) (eval.Object, error) {
	tag, rest, ok := strings.Cut(raw, ":")
	if !ok {
		return nil, errors.Errorf("%q: malformed stored value", raw)
	}
	switch tag {
	case "i":
		v, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return nil, errors.Wrap(err, "stored integer")
		}
		return eval.CreateInt(v), nil
	case "r":
		v, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return nil, errors.Wrap(err, "stored real")
		}
		return eval.CreateReal(v), nil
	case "b":
		v, err := strconv.ParseBool(rest)
		if err != nil {
			return nil, errors.Wrap(err, "stored boolean")
		}
		return eval.CreateBool(v), nil
	default:
		return nil, errors.Errorf("%q: unknown value tag", tag)
	}
}
