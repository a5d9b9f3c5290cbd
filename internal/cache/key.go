package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"vagasboard-engine/internal/domain"
)

// keyPrefix namespaces every listing cache entry in the shared store.
const keyPrefix = "vagas_"

// keyParams pins the hashed parameter set. Field order is fixed by the
// struct, so the same inputs always produce the same key.
type keyParams struct {
	CID   string `json:"cid"`
	Limit int    `json:"limit"`
}

// Key builds the cache key for a (cid, limit) pair:
//
//	vagas_<sha256(cid)[:8]>_<sha256({cid,limit})[:16]>
//
// The account segment exists so ClearForCID can purge by prefix without
// knowing which limits were ever requested.
func Key(cid string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	params, _ := json.Marshal(keyParams{CID: cid, Limit: limit})
	return accountPrefix(cid) + shortHash(params, 16)
}

// accountPrefix is the shared prefix of every key for one account.
func accountPrefix(cid string) string {
	return keyPrefix + shortHash([]byte(cid), 8) + "_"
}

func shortHash(b []byte, n int) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])[:n]
}

func encodeListings(listings []domain.Listing) ([]byte, error) {
	return json.Marshal(listings)
}

func decodeListings(raw []byte) ([]domain.Listing, error) {
	var listings []domain.Listing
	if err := json.Unmarshal(raw, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}
