package models

type NotificationType string

const (
	NotificationInfo    NotificationType = "INFO"
	NotificationSuccess NotificationType = "SUCCESS"
	NotificationWarning NotificationType = "WARNING"
	NotificationError   NotificationType = "ERROR"
)

type Notification struct {
	ID                int64            `json:"id"`
	Title             string           `json:"title"`
	Message           string           `json:"message"`
	Type              NotificationType `json:"type"`
	Read              bool             `json:"read"`
	CreatedAt         string           `json:"createdAt"`
	RelatedEntityType string           `json:"relatedEntityType,omitempty"`
	RelatedEntityID   *int64           `json:"relatedEntityId,omitempty"`
}
