package domain

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const fileStateVersion = 1

// ErrStateTampered is returned when the state file fails its integrity check.
var ErrStateTampered = errors.New("state file failed integrity check")

// fileState is the on-disk layout. The hmac field signs the rest of the
// document so manual edits are detected on the next load.
type fileState struct {
	Version   int                   `json:"version"`
	UpdatedAt string                `json:"updated_at"`
	Domains   map[string]fileRecord `json:"domains"`
	HMAC      string                `json:"hmac,omitempty"`
}

type fileRecord struct {
	LastVerdict string `json:"last_verdict"`
	CheckedAt   string `json:"checked_at"`
	NotifiedAt  string `json:"notified_at,omitempty"`
}

// FileStore keeps all records in a single JSON file. Loads happen once at
// construction; every transition is written back immediately so state
// survives the short-lived runs this system is scheduled as.
type FileStore struct {
	mu     sync.Mutex
	path   string
	secret []byte
	recs   map[string]Record
}

// NewFileStore opens or creates the state file at path. A non-empty secret
// enables HMAC-SHA256 integrity protection.
func NewFileStore(path, secret string) (*FileStore, error) {
	s := &FileStore{path: path, recs: make(map[string]Record)}
	if secret != "" {
		s.secret = []byte(secret)
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read state file %s: %w", s.path, err)
	}

	var st fileState
	if err := json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("parse state file %s: %w", s.path, err)
	}
	if s.secret != nil {
		stored, err := hex.DecodeString(st.HMAC)
		if err != nil || !hmac.Equal(stored, s.sign(st)) {
			return fmt.Errorf("%w: %s", ErrStateTampered, s.path)
		}
	}

	for fqdn, fr := range st.Domains {
		rec := Record{Domain: fqdn}
		if rec.LastVerdict, err = ParseVerdict(fr.LastVerdict); err != nil {
			return fmt.Errorf("state file %s: domain %s: %w", s.path, fqdn, err)
		}
		if rec.CheckedAt, err = time.Parse(time.RFC3339, fr.CheckedAt); err != nil {
			return fmt.Errorf("state file %s: domain %s: %w", s.path, fqdn, err)
		}
		if fr.NotifiedAt != "" {
			t, err := time.Parse(time.RFC3339, fr.NotifiedAt)
			if err != nil {
				return fmt.Errorf("state file %s: domain %s: %w", s.path, fqdn, err)
			}
			rec.NotifiedAt = &t
		}
		s.recs[fqdn] = rec
	}
	return nil
}

// sign computes the HMAC over the document with its hmac field cleared.
// json.Marshal sorts map keys, so the serialization is deterministic.
func (s *FileStore) sign(st fileState) []byte {
	st.HMAC = ""
	payload, _ := json.Marshal(st)
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(payload)
	return mac.Sum(nil)
}

func (s *FileStore) save() error {
	st := fileState{
		Version:   fileStateVersion,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
		Domains:   make(map[string]fileRecord, len(s.recs)),
	}
	for fqdn, rec := range s.recs {
		fr := fileRecord{
			LastVerdict: rec.LastVerdict.String(),
			CheckedAt:   rec.CheckedAt.UTC().Format(time.RFC3339),
		}
		if rec.NotifiedAt != nil {
			fr.NotifiedAt = rec.NotifiedAt.UTC().Format(time.RFC3339)
		}
		st.Domains[fqdn] = fr
	}
	if s.secret != nil {
		st.HMAC = hex.EncodeToString(s.sign(st))
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

func (s *FileStore) Get(fqdn string) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recs[fqdn]
	return rec, ok, nil
}

func (s *FileStore) ShouldNotify(fqdn string, v Verdict) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recs[fqdn]
	return ShouldNotifyRecord(rec, ok, v), nil
}

func (s *FileStore) RecordTransition(fqdn string, v Verdict, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.recs[fqdn]
	s.recs[fqdn] = ApplyTransition(prev, ok, fqdn, v, at)
	return s.save()
}

func (s *FileStore) Close() error { return nil }
