package ports

import "context"

// Announcer fans an already-serialized order-created payload out to the
// broadcast channels. Serialization happens before the announcer is invoked
// so a marshalling failure never reaches the network.
type Announcer interface {
	AnnounceCreated(ctx context.Context, payload string) error
}
