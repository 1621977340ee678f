package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkgerror"
	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkgrouter"
	"github.com/raise-sistemas/jsr-uid/internal/uid/usecase"
)

const maxRequestBody = 4 * 1024

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) Generate(ctx context.Context, r *http.Request) (any, error) {
	var req GenerateRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		return nil, err
	}

	result, err := h.uc.Generate(ctx, usecase.GenerateRequest{
		Timestamp: req.Timestamp,
		Count:     req.Count,
	})
	if err != nil {
		return nil, err
	}

	return GenerateResponse{IDs: result.IDs}, nil
}

func (h *HTTPEndpoint) Decode(ctx context.Context, r *http.Request) (any, error) {
	id := strings.TrimSpace(pkgrouter.GetParam(ctx, "id"))
	if id == "" {
		return nil, pkgerror.NewInvalidInput(errors.New("id is required"))
	}

	result, err := h.uc.Decode(ctx, id)
	if err != nil {
		return nil, err
	}

	return DecodeResponse{
		ID:             result.ID,
		Timestamp:      result.Parts.Timestamp,
		Time:           result.Parts.Time().Format(time.RFC3339Nano),
		ApplicationTag: result.Parts.ApplicationTag,
		WorkerTag:      result.Parts.WorkerTag,
		Counter:        result.Parts.Counter,
	}, nil
}

func (h *HTTPEndpoint) State(ctx context.Context, _ *http.Request) (any, error) {
	snap := h.uc.State(ctx).Snapshot

	lastID := ""
	if snap.LastID != 0 {
		lastID = snap.LastID.String()
	}

	return StateResponse{
		ApplicationTag: snap.ApplicationTag,
		WorkerTag:      snap.WorkerTag,
		LastTimestamp:  snap.LastTimestamp,
		Counter:        snap.Counter,
		LastID:         lastID,
		FloorTimestamp: snap.FloorTimestamp,
	}, nil
}

func (h *HTTPEndpoint) Sync(ctx context.Context, _ *http.Request) (any, error) {
	result, err := h.uc.Sync(ctx)
	if err != nil {
		return nil, err
	}

	return SyncResponse{
		RemoteTimestamp: result.RemoteTimestamp,
		FloorTimestamp:  result.FloorTimestamp,
		Raised:          result.Raised,
	}, nil
}

// decodeOptionalJSON fills dst from the request body; an empty body keeps
// dst's zero value.
func decodeOptionalJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return pkgerror.NewInvalidFormat()
	}
	return nil
}
