package auth

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/geeom/personal-assistant-web/browser"
)

// GenerateState returns a fresh opaque nonce for the OAuth state
// parameter. UUID v4 gives 122 bits of randomness, enough to make
// guessing or collision negligible.
func GenerateState() string {
	return uuid.NewString()
}

// StateStore persists the pending nonce across the provider redirect
// round-trip, under a single reserved storage key. At most one nonce is
// live at a time; saving again overwrites it.
//
// Storage failures degrade to "absent": the flow then rejects the
// callback as a state mismatch instead of crashing.
type StateStore struct {
	storage browser.Storage
	key     string
}

func NewStateStore(storage browser.Storage, key string) *StateStore {
	return &StateStore{storage: storage, key: key}
}

// Save stashes nonce for the upcoming redirect round-trip.
func (s *StateStore) Save(nonce string) {
	if err := s.storage.SetItem(s.key, nonce); err != nil {
		log.Warn().Err(err).Msg("could not persist oauth state")
	}
}

// Load returns the pending nonce, or false when none is stored or
// storage is unavailable.
func (s *StateStore) Load() (string, bool) {
	nonce, ok, err := s.storage.GetItem(s.key)
	if err != nil {
		log.Warn().Err(err).Msg("could not read oauth state")
		return "", false
	}
	return nonce, ok
}

// Clear consumes the pending nonce. Nonces are single use:
// Clear runs before the code exchange so a duplicate callback finds
// nothing to match against.
func (s *StateStore) Clear() {
	if err := s.storage.RemoveItem(s.key); err != nil {
		log.Warn().Err(err).Msg("could not clear oauth state")
	}
}
