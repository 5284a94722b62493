// Package session persists the credential/profile pair across process
// restarts. The store performs no expiry checks; deciding whether a stored
// session is still usable belongs to the auth manager.
package session

import (
	"github.com/hashedin27-max/GCS-Upload/internal/client/models"
)

// Fixed key names for the two durable entries.
const (
	TokenKey = "auth_token"
	UserKey  = "current_user"
)

// Store is the durable key-value persistence for the session. Load returns
// common.ErrNoSession when either entry is missing; a stored profile that
// fails to parse must be wiped by the implementation before reporting the
// session as absent, so that callers never see a partial record.
type Store interface {
	Save(token string, user *models.User) error
	Load() (string, *models.User, error)
	Clear() error
}
