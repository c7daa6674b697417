package storage_test

import (
	"context"
	"errors"
	"testing"

	"coursedocs/internal/storage"
	storeMocks "coursedocs/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyVerified(t *testing.T) {
	ctx := context.Background()
	const src, dst = "temp/300/first-semester/shared/C101/a.pdf", "300/first-semester/shared/C101/a.pdf"

	tests := []struct {
		name       string
		wantSize   int64
		setupMocks func(m *storeMocks.MockStorage)
		wantErr    error
		wantErrMsg string
	}{
		{
			name:     "happy path",
			wantSize: 42,
			setupMocks: func(m *storeMocks.MockStorage) {
				m.On("Copy", ctx, src, dst).Return(storage.ObjectInfo{Key: dst, Size: 42}, nil)
				m.On("Stat", ctx, dst).Return(storage.ObjectInfo{Key: dst, Size: 42}, nil)
			},
		},
		{
			name:     "unknown size only needs content",
			wantSize: 0,
			setupMocks: func(m *storeMocks.MockStorage) {
				m.On("Copy", ctx, src, dst).Return(storage.ObjectInfo{Key: dst}, nil)
				m.On("Stat", ctx, dst).Return(storage.ObjectInfo{Key: dst, Size: 7}, nil)
			},
		},
		{
			name:     "copy error",
			wantSize: 42,
			setupMocks: func(m *storeMocks.MockStorage) {
				m.On("Copy", ctx, src, dst).Return(storage.ObjectInfo{}, errors.New("access denied"))
			},
			wantErrMsg: "access denied",
		},
		{
			name:     "destination missing",
			wantSize: 42,
			setupMocks: func(m *storeMocks.MockStorage) {
				m.On("Copy", ctx, src, dst).Return(storage.ObjectInfo{Key: dst, Size: 42}, nil)
				m.On("Stat", ctx, dst).Return(storage.ObjectInfo{}, storage.ErrObjectNotFound)
			},
			wantErr: storage.ErrIncompleteCopy,
		},
		{
			name:     "destination truncated",
			wantSize: 42,
			setupMocks: func(m *storeMocks.MockStorage) {
				m.On("Copy", ctx, src, dst).Return(storage.ObjectInfo{Key: dst, Size: 42}, nil)
				m.On("Stat", ctx, dst).Return(storage.ObjectInfo{Key: dst, Size: 10}, nil)
			},
			wantErr: storage.ErrIncompleteCopy,
		},
		{
			name:     "stat error",
			wantSize: 42,
			setupMocks: func(m *storeMocks.MockStorage) {
				m.On("Copy", ctx, src, dst).Return(storage.ObjectInfo{Key: dst, Size: 42}, nil)
				m.On("Stat", ctx, dst).Return(storage.ObjectInfo{}, errors.New("timeout"))
			},
			wantErrMsg: "verify",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(storeMocks.MockStorage)
			tt.setupMocks(m)

			_, err := storage.CopyVerified(ctx, m, src, dst, tt.wantSize)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			default:
				assert.NoError(t, err)
			}
			// the source is never touched here
			m.AssertNotCalled(t, "Delete", ctx, src)
			m.AssertExpectations(t)
		})
	}
}
