package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/mmcdole/reel/internal/domain"
)

// Bucket names
var (
	bucketUserData = []byte("user_data")
	bucketMovies   = []byte("movies")
	bucketMeta     = []byte("meta")
)

// Keys of the user_data bucket
const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyEmail        = "email"
	keyName         = "name"
	keyPicture      = "picture"

	keyInstallationID = "installation_id"
)

// Store is the durable key-value store of the client: the signed-in user's
// session, a cache of fetched movies and a few bits of metadata.
type Store struct {
	db *bolt.DB
	mu sync.RWMutex // serializes writes and guards mem

	// backing map in memory-only mode
	mem map[string][]byte
}

// NewStore opens (or creates) the database under dir. An empty dir selects
// memory-only mode.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return &Store{mem: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "reel.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketUserData, bucketMovies, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func memKey(bucket []byte, key string) string {
	return string(bucket) + ":" + key
}

// === Generic helpers ===

// putAll writes every pair in a single transaction
func (s *Store) putAll(bucket []byte, kv map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		for k, v := range kv {
			s.mem[memKey(bucket, k)] = v
		}
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		for k, v := range kv {
			if err := b.Put([]byte(k), v); err != nil {
				return err
			}
		}
		return nil
	})
}

// getAll reads keys from one consistent snapshot. Missing keys are absent
// from the result.
func (s *Store) getAll(bucket []byte, keys ...string) map[string][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]byte, len(keys))
	if s.db == nil {
		for _, k := range keys {
			if v, ok := s.mem[memKey(bucket, k)]; ok {
				out[k] = v
			}
		}
		return out
	}

	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		for _, k := range keys {
			if v := b.Get([]byte(k)); v != nil {
				data := make([]byte, len(v))
				copy(data, v)
				out[k] = data
			}
		}
		return nil
	})
	return out
}

// clearBucket removes every key of bucket in a single write
func (s *Store) clearBucket(bucket []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		prefix := string(bucket) + ":"
		for k := range s.mem {
			if strings.HasPrefix(k, prefix) {
				delete(s.mem, k)
			}
		}
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucket); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		_, err := tx.CreateBucket(bucket)
		return err
	})
}

// === Session ===

// SaveSession persists all session fields atomically
func (s *Store) SaveSession(sess domain.Session) error {
	return s.putAll(bucketUserData, map[string][]byte{
		keyAccessToken:  []byte(sess.AccessToken),
		keyRefreshToken: []byte(sess.RefreshToken),
		keyEmail:        []byte(sess.Email),
		keyName:         []byte(sess.Username),
		keyPicture:      []byte(sess.AvatarURL),
	})
}

// LoadSession returns the stored session. Missing keys read as empty strings.
func (s *Store) LoadSession() domain.Session {
	kv := s.getAll(bucketUserData, keyAccessToken, keyRefreshToken, keyEmail, keyName, keyPicture)
	return domain.Session{
		AccessToken:  string(kv[keyAccessToken]),
		RefreshToken: string(kv[keyRefreshToken]),
		Email:        string(kv[keyEmail]),
		Username:     string(kv[keyName]),
		AvatarURL:    string(kv[keyPicture]),
	}
}

// ClearSession removes every session key
func (s *Store) ClearSession() error {
	return s.clearBucket(bucketUserData)
}

// === Movies ===

func movieKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

// PutMovie caches a movie by id
func (s *Store) PutMovie(m domain.Movie) error {
	return s.PutMovies([]domain.Movie{m})
}

// PutMovies caches several movies in one write
func (s *Store) PutMovies(movies []domain.Movie) error {
	if len(movies) == 0 {
		return nil
	}
	kv := make(map[string][]byte, len(movies))
	for _, m := range movies {
		data, err := json.Marshal(m)
		if err != nil {
			return err
		}
		kv[movieKey(m.ID)] = data
	}
	return s.putAll(bucketMovies, kv)
}

// GetMovie returns a cached movie
func (s *Store) GetMovie(id int64) (domain.Movie, bool) {
	key := movieKey(id)
	data, ok := s.getAll(bucketMovies, key)[key]
	if !ok {
		return domain.Movie{}, false
	}
	var m domain.Movie
	if err := json.Unmarshal(data, &m); err != nil {
		return domain.Movie{}, false
	}
	return m, true
}

// ClearMovies drops the movie cache
func (s *Store) ClearMovies() error {
	return s.clearBucket(bucketMovies)
}

// === Meta ===

// InstallationID returns a random identifier created on first use
func (s *Store) InstallationID() (string, error) {
	if v, ok := s.getAll(bucketMeta, keyInstallationID)[keyInstallationID]; ok && len(v) > 0 {
		return string(v), nil
	}
	id := uuid.NewString()
	if err := s.putAll(bucketMeta, map[string][]byte{keyInstallationID: []byte(id)}); err != nil {
		return "", err
	}
	return id, nil
}
