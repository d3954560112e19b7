package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeLoginSucceeded   = "authn.succeeded"
	EventTypeLoginFailed      = "authn.failed"
	EventTypePermissionDenied = "authz.denied"
)

type LoginSucceededEvent struct {
	BaseEvent
	IdentityID string `json:"identity_id"`
	Username   string `json:"username"`
}

func NewLoginSucceededEvent(identityID, username string) *LoginSucceededEvent {
	return &LoginSucceededEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLoginSucceeded,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"identity_id": identityID,
				"username":    username,
			},
		},
		IdentityID: identityID,
		Username:   username,
	}
}

// LoginFailedEvent records the internal reason for a failed login. The
// reason never leaves server-side logs and audit storage; clients always
// see the same generic failure.
type LoginFailedEvent struct {
	BaseEvent
	Username string `json:"username"`
	Reason   string `json:"reason"`
}

func NewLoginFailedEvent(username, reason string) *LoginFailedEvent {
	return &LoginFailedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLoginFailed,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"username": username,
				"reason":   reason,
			},
		},
		Username: username,
		Reason:   reason,
	}
}

type PermissionDeniedEvent struct {
	BaseEvent
	IdentityID     string `json:"identity_id"`
	PermissionCode string `json:"permission_code"`
}

func NewPermissionDeniedEvent(identityID, permissionCode string) *PermissionDeniedEvent {
	return &PermissionDeniedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePermissionDenied,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"identity_id":     identityID,
				"permission_code": permissionCode,
			},
		},
		IdentityID:     identityID,
		PermissionCode: permissionCode,
	}
}
