package inbound

import (
	"net/http"
)

type GenerateRequest struct {
	Timestamp *int64 `json:"timestamp"`
	Count     int    `json:"count"`
}

type GenerateResponse struct {
	IDs []string `json:"ids"`
}

func (GenerateResponse) StatusCode() int {
	return http.StatusCreated
}

func (GenerateResponse) Message() string {
	return "ids generated"
}

type DecodeResponse struct {
	ID             string `json:"id"`
	Timestamp      int64  `json:"timestamp"`
	Time           string `json:"time"`
	ApplicationTag int64  `json:"application_tag"`
	WorkerTag      int64  `json:"worker_tag"`
	Counter        int64  `json:"counter"`
}

type StateResponse struct {
	ApplicationTag int64  `json:"application_tag"`
	WorkerTag      int64  `json:"worker_tag"`
	LastTimestamp  int64  `json:"last_timestamp"`
	Counter        int64  `json:"counter"`
	LastID         string `json:"last_id"`
	FloorTimestamp int64  `json:"floor_timestamp"`
}

type SyncResponse struct {
	RemoteTimestamp int64 `json:"remote_timestamp"`
	FloorTimestamp  int64 `json:"floor_timestamp"`
	Raised          bool  `json:"raised"`
}

func (r SyncResponse) Message() string {
	if r.Raised {
		return "floor raised"
	}
	return "floor unchanged"
}
