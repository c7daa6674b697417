package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrIncompleteCopy means the destination of a copy is missing or smaller/larger than expected.
var ErrIncompleteCopy = errors.New("copied object missing or incomplete")

// CopyVerified copies src to dst and confirms dst exists with wantSize bytes.
// It never deletes src; the caller removes the source only once the new location is recorded.
// A wantSize of zero or less only checks that dst exists with some content.
func CopyVerified(ctx context.Context, s Storage, src, dst string, wantSize int64) (ObjectInfo, error) {
	if _, err := s.Copy(ctx, src, dst); err != nil {
		return ObjectInfo{}, fmt.Errorf("copy %s -> %s: %w", src, dst, err)
	}
	info, err := s.Stat(ctx, dst)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return ObjectInfo{}, fmt.Errorf("%w: %s not found after copy", ErrIncompleteCopy, dst)
		}
		return ObjectInfo{}, fmt.Errorf("verify %s: %w", dst, err)
	}
	if (wantSize > 0 && info.Size != wantSize) || (wantSize <= 0 && info.Size <= 0) {
		return ObjectInfo{}, fmt.Errorf("%w: %s has %d bytes, want %d", ErrIncompleteCopy, dst, info.Size, wantSize)
	}
	return info, nil
}
