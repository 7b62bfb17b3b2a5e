//go:build !windows

package stdinmode

func rebind() error { return nil }
