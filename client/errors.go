// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package client

import "fmt"

// TransportError indicates an HTTP-level failure talking to a peer
// agent: connection refused, timeout, or a non-2xx status.
type TransportError struct {
	URL    string
	Status int
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport error calling %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("transport error calling %s: status %d", e.URL, e.Status)
}

// Unwrap returns the underlying error, if any.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError indicates the peer responded but not with a valid RPC
// envelope, or with an envelope carrying no result.
type ProtocolError struct {
	URL    string
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("protocol error from %s: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("protocol error from %s: %s", e.URL, e.Reason)
}

// Unwrap returns the underlying error, if any.
func (e *ProtocolError) Unwrap() error {
	return e.Err
}
