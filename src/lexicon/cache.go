package lexicon

import (
	"os"
	"path/filepath"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"SentiVec/src/library/log"
	"SentiVec/src/metrics"
)

// SnapshotSuffix names the on-disk cache next to its training corpus.
const SnapshotSuffix = ".lexicon.gob"

var memo = gocache.New(30*time.Minute, 10*time.Minute)

// SetCacheTTL adjusts the in-memory memoization window.
func SetCacheTTL(ttl time.Duration) {
	if ttl > 0 {
		memo = gocache.New(ttl, ttl/2)
	}
}

// Builder produces a lexicon when no snapshot exists.
type Builder func() (*Lexicon, error)

// LoadOrCreate returns the lexicon for trainPath: from the process memo if
// seen, else from the gob snapshot, else by running build. The snapshot is
// re-written on every call so older formats heal themselves.
func LoadOrCreate(trainPath string, build Builder) (*Lexicon, error) {
	snapshotPath := trainPath + SnapshotSuffix
	key := cacheKey(snapshotPath)
	if cached, ok := memo.Get(key); ok {
		lex := cached.(*Lexicon)
		log.Debug("lexicon served from memory for %s", snapshotPath)
		return lex, nil
	}

	lex, err := Load(snapshotPath)
	switch {
	case err == nil:
		log.Debug("lexicon loaded from %s", snapshotPath)
	case os.IsNotExist(err):
		lex, err = build()
		if err != nil {
			return nil, err
		}
		log.Debug("lexicon created from %s", trainPath)
	default:
		return nil, err
	}

	if err := lex.Save(snapshotPath); err != nil {
		return nil, err
	}
	log.Debug("lexicon dumped to %s", snapshotPath)

	memo.Set(key, lex, gocache.DefaultExpiration)
	metrics.LexiconSize.Set(float64(lex.Size()))
	return lex, nil
}

func cacheKey(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
