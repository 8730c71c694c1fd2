package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"
	"ragstore/internal/port"
)

var bucketEmbeddings = []byte("embeddings")

// CachedEmbedder wraps an Embedder with a bbolt-backed cache so repeated
// ingests and queries do not re-embed identical text. Cache keys include
// the model name; switching models never serves stale vectors.
type CachedEmbedder struct {
	inner port.Embedder
	db    *bbolt.DB
}

func NewCachedEmbedder(path string, inner port.Embedder) (*CachedEmbedder, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedding cache: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketEmbeddings)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create embeddings bucket: %w", err)
	}

	return &CachedEmbedder{inner: inner, db: db}, nil
}

func (c *CachedEmbedder) cacheKey(text string) []byte {
	hash := sha256.Sum256([]byte(c.inner.ModelName() + "\x00" + text))
	return hash[:]
}

// Embed serves cached vectors where possible and forwards the remaining
// texts to the wrapped embedder in a single batch, writing results back.
func (c *CachedEmbedder) Embed(texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	var missing []int

	err := c.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketEmbeddings)
		for i, text := range texts {
			data := b.Get(c.cacheKey(text))
			if data == nil {
				missing = append(missing, i)
				continue
			}
			var vector []float32
			if err := json.Unmarshal(data, &vector); err != nil {
				// Treat corrupted entries as misses.
				missing = append(missing, i)
				continue
			}
			vectors[i] = vector
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(missing) == 0 {
		return vectors, nil
	}

	uncached := make([]string, len(missing))
	for i, idx := range missing {
		uncached[i] = texts[idx]
	}
	fresh, err := c.inner.Embed(uncached)
	if err != nil {
		return nil, err
	}
	if len(fresh) != len(missing) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(fresh), len(missing))
	}

	err = c.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketEmbeddings)
		for i, idx := range missing {
			vectors[idx] = fresh[i]
			data, err := json.Marshal(fresh[i])
			if err != nil {
				return err
			}
			if err := b.Put(c.cacheKey(texts[idx]), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to write embedding cache: %w", err)
	}
	return vectors, nil
}

func (c *CachedEmbedder) Dimension() int {
	return c.inner.Dimension()
}

func (c *CachedEmbedder) ModelName() string {
	return c.inner.ModelName()
}

func (c *CachedEmbedder) Close() error {
	return c.db.Close()
}
