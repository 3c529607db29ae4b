package errors

import "fmt"

var (
	ErrInvalidInput     = fmt.Errorf("invalid input")
	ErrRoomNotFound     = fmt.Errorf("room not found")
	ErrSenderNotMember  = fmt.Errorf("sender is not a member of the room")
	ErrAccessDenied     = fmt.Errorf("access denied")
	ErrStoreUnavailable = fmt.Errorf("store unavailable")
	ErrFanoutDelivery   = fmt.Errorf("fanout delivery failed")
	ErrWorkerPanic      = fmt.Errorf("worker panic")
	ErrEmptyWords       = fmt.Errorf("no words have been found")
	ErrSinkFull         = fmt.Errorf("sink buffer is full")
	ErrCorruptedRecord  = fmt.Errorf("corrupted record")
	ErrProviderClosed   = fmt.Errorf("push provider closed")
	ErrUnknownProvider  = fmt.Errorf("unknown push provider")
)
