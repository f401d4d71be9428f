package domain

import "time"

// Protocol identifies the streaming protocol a source speaks.
type Protocol string

// ProtocolRTSP is the only protocol currently supported by sources.
const ProtocolRTSP Protocol = "rtsp"

// Valid reports whether the protocol is one of the supported values.
func (p Protocol) Valid() bool {
	return p == ProtocolRTSP
}

// Source is a network camera or stream endpoint registered with the service.
// The password is stored as provided; it is masked by the payload sanitizer
// before any log emission.
type Source struct {
	ID          string
	Name        string
	Description string
	Address     string
	Port        int
	Username    string
	Password    string
	Protocol    Protocol
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
