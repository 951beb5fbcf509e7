package service

import (
	"context"

	"github.com/LogM3/Poster/internal/config"
	"github.com/LogM3/Poster/internal/repository"
)

type TechInfo struct {
	Tables       int    `json:"tables"`
	PostsPerPage int    `json:"postsPerPage"`
	IndexCache   string `json:"indexCache"`
}

type AboutService interface {
	Tech(ctx context.Context) (*TechInfo, error)
}

type aboutService struct {
	tablesRepo repository.TablesRepository
	cfg        *config.Config
}

func NewAboutService(tablesRepo repository.TablesRepository, cfg *config.Config) AboutService {
	return &aboutService{tablesRepo: tablesRepo, cfg: cfg}
}

func (a *aboutService) Tech(ctx context.Context) (*TechInfo, error) {
	countTables, err := a.tablesRepo.CountTablesDB(ctx)
	if err != nil {
		return nil, err
	}

	return &TechInfo{
		Tables:       countTables,
		PostsPerPage: a.cfg.PostsPerPage,
		IndexCache:   a.cfg.Cache.IndexTTL.String(),
	}, nil
}
