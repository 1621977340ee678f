package inbound

import (
	"context"

	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkgrouter"
	"github.com/raise-sistemas/jsr-uid/internal/uid/usecase"
)

type uc interface {
	Generate(ctx context.Context, req usecase.GenerateRequest) (usecase.GenerateResult, error)
	Decode(ctx context.Context, id string) (usecase.DecodeResult, error)
	State(ctx context.Context) usecase.StateResult
	Sync(ctx context.Context) (usecase.SyncResult, error)
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/ids", end.Generate)
	r.GET("/ids/:id", end.Decode)

	r.GET("/state", end.State)
	r.POST("/sync", end.Sync)
}
