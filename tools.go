//go:build tools

// Package tools pins the mock generator used for pkg/*/mocks.
package tools

import (
	_ "github.com/vektra/mockery/v2"
)
