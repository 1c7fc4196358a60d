package app

import (
	"accounting-backend/internal/core"
	"accounting-backend/internal/db"

	"go.uber.org/zap"
)

// PostgresServices builds the core services over the Postgres stores behind gw.
// recorder may be nil.
func PostgresServices(gw db.Gateway, log *zap.Logger, recorder core.OperationRecorder) Services {
	return Services{
		Invoices: core.NewInvoiceService(core.NewInvoiceStore(gw), log, recorder),
		Parties:  core.NewPartyService(core.NewPartyStore(gw)),
		Products: core.NewProductService(core.NewProductStore(gw)),
		Units:    core.NewUnitService(core.NewUnitStore(gw)),
		Users:    core.NewUserService(core.NewUserStore(gw)),
	}
}
