// Package sqlite provides the public API for the SQLite sheet backend.
// This package exposes the factory function for creating SQLite backends
// while keeping implementation details internal.
package sqlite

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/quantities/internal/sqlite"
	"github.com/mesh-intelligence/quantities/pkg/types"
)

// NewBackend creates a new SQLite backend instance. A nil logger disables
// logging. The backend is not attached; call Attach with a Config to
// initialize.
//
// Example:
//
//	sheet := sqlite.NewBackend(nil)
//	err := sheet.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".qty-db",
//	})
//	defer sheet.Detach()
func NewBackend(logger *zap.Logger) types.Sheet {
	return sqlite.NewBackend(sqlite.WithLogger(logger))
}
