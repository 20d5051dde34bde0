package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/sekolahku/ppdb/internal/config"
	"github.com/sekolahku/ppdb/pkg/core/services"
	"github.com/sekolahku/ppdb/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database *postgres.DB
	Notifier services.Notifier // nil when notifications are not configured
	Logger   *zap.Logger
	Ctx      context.Context
}
