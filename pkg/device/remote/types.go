package remote

import "time"

type EmptyRequest struct {
}

type EmptyResponse struct {
}

type SendRequest struct {
	Opcode  byte
	Payload []byte
}

type PollRequest struct {
	Size    int
	Timeout time.Duration
}
