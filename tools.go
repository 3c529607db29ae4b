//go:build tools
// +build tools

// Package tools pins the generators run by `go generate` (mockgen for the
// contract and service mocks) so go.mod and go.sum track them.
package chat_core

import (
	_ "go.uber.org/mock/mockgen"
)
