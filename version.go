package client

import (
	"fmt"
	"runtime"
	"strings"
)

const (
	// Title is the product name sent in the User-Agent header.
	Title = "clearpass"

	// Version is the library version sent in the User-Agent header.
	Version = "0.1.0"
)

// UserAgent returns the User-Agent header value sent with every request,
// e.g. "clearpass/0.1.0 (Go 1.25.0)".
func UserAgent() string {
	return fmt.Sprintf("%s/%s (Go %s)", Title, Version, strings.TrimPrefix(runtime.Version(), "go"))
}
