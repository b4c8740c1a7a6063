package service

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// DB 開交易用的最小介面，*pgxpool.Pool 直接滿足
type DB interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}
