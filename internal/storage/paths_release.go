//go:build !debug

package storage

const debugBuild = false
