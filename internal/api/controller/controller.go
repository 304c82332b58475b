package controller

import (
	"github.com/ougirez/agrodash/internal/service/ingest"
	"github.com/ougirez/agrodash/internal/service/query"
)

type Controller struct {
	query  *query.Service
	ingest *ingest.Service
}

func NewController(query *query.Service, ingest *ingest.Service) *Controller {
	return &Controller{query: query, ingest: ingest}
}
