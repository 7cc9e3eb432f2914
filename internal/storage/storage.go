// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage persists uploaded media files, either on local disk
// (served under /uploads) or in an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"
)

// ErrInvalidName is returned for object names that could escape the
// upload location.
var ErrInvalidName = errors.New("invalid object name")

// Object describes a stored upload.
type Object struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// Backend stores, lists and removes uploaded files.
type Backend interface {
	// Save writes the file under name and returns its public URL.
	Save(ctx context.Context, name, contentType string, body io.Reader, size int64) (string, error)
	// List returns every stored upload.
	List(ctx context.Context) ([]Object, error)
	// Delete removes an upload. Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error
}

// validName rejects empty names, directory components and dot files.
func validName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") || path.Clean(name) != name {
		return ErrInvalidName
	}
	return nil
}
