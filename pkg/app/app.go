package app

import (
	"github.com/servnow/servnow/pkg/config"
	"github.com/servnow/servnow/pkg/contractor"
	"github.com/servnow/servnow/pkg/service/earnings"
)

type App struct {
	Deps              *config.Deps
	Config            *config.App
	EarningsService   *earnings.Service
	ContractorService contractor.Service
}

func New(deps *config.Deps) (*App, error) {
	svc, err := earnings.New(*deps)
	if err != nil {
		return nil, err
	}
	app := &App{
		Deps:              deps,
		Config:            deps.Config,
		EarningsService:   svc,
		ContractorService: deps.ContractorService,
	}
	app.setupEventBus()
	return app, nil
}
