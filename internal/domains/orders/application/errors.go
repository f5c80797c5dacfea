package application

import "errors"

var (
	// ErrSerialization signals the order could not be marshalled to the wire
	// payload; creation fails before any network call.
	ErrSerialization = errors.New("order serialization failed")
	// ErrPublish signals at least one broadcast sink rejected the announce.
	ErrPublish = errors.New("order announce failed")
	// ErrPersistence signals the store rejected the write; the triggering
	// message stays on the queue for redelivery.
	ErrPersistence = errors.New("order persistence failed")
	// ErrTransport signals the queue receive itself failed; the whole poll
	// cycle is abandoned.
	ErrTransport = errors.New("order queue unreachable")
)
