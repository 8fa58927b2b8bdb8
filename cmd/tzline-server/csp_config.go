package main

import (
	"fmt"
	"os"
	"strings"
)

// cspPolicy returns the Content Security Policy for every response.
func cspPolicy() string {
	directives := []string{
		"default-src 'self'",
		"script-src 'self'",
		"style-src 'self'",
		"img-src 'self' data:",
		"font-src 'self' data:",
	}

	// The timeline websocket is same-origin; older Safari builds do not map 'self' to ws:.
	connectSrcs := []string{"'self'"}
	if host := os.Getenv("TZLINE_PUBLIC_HOST"); host != "" {
		connectSrcs = append(connectSrcs, "wss://"+host, "ws://"+host)
	}
	directives = append(directives,
		fmt.Sprintf("connect-src %s", strings.Join(connectSrcs, " ")),
		"object-src 'none'",
		"base-uri 'self'",
		"form-action 'self'",
		"frame-ancestors 'none'",
	)

	if os.Getenv("PRODUCTION") == "true" {
		directives = append(directives, "upgrade-insecure-requests")
	}

	return strings.Join(directives, "; ")
}
