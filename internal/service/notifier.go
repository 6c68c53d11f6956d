package service

// Notifier pushes events to managers watching a store (implemented by the
// WebSocket hub, kept as an interface to avoid an import cycle)
type Notifier interface {
	NotifyStore(storeID string, msgType string, payload interface{})
}

// Notification message types
const (
	MsgInspectionCreated = "inspection_created"
)
