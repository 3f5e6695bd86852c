package logging

import "go.uber.org/zap"

// Field keys shared by every component that logs a batch.
const (
	KeyBatchID   = "batch_id"
	KeyRequestID = "request_id"
	KeyLines     = "lines"
	KeyEvents    = "events"
	KeyDisks     = "disks"
)

func BatchID(id string) zap.Field   { return zap.String(KeyBatchID, id) }
func RequestID(id string) zap.Field { return zap.String(KeyRequestID, id) }
func Lines(n int) zap.Field         { return zap.Int(KeyLines, n) }
func Events(n int) zap.Field        { return zap.Int(KeyEvents, n) }
func Disks(n int) zap.Field         { return zap.Int(KeyDisks, n) }
