package handlers

import (
	"stockroom/internal/catalog"
	"stockroom/internal/config"
	"stockroom/internal/intake"
	"stockroom/internal/repos"
	"stockroom/internal/services"
	"stockroom/internal/storage"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Auth            *services.AuthService
	AuthHandler     *AuthHandler
	ProductHandler  *ProductHandler
	CategoryHandler *CategoryHandler
	MediaDir        string
}

func NewDeps(db *sqlx.DB, cfg config.Config) (*Deps, error) {
	store, err := storage.NewLocalStore(cfg.MediaDir, mediaPrefix(cfg))
	if err != nil {
		return nil, err
	}
	fields := catalog.Default()
	userRepo := repos.NewUserRepo(db)
	prodRepo := repos.NewProductRepo(db)

	authSvc := &services.AuthService{Users: userRepo}
	catalogSvc := services.NewCatalogService(fields, prodRepo)
	intakeSvc := services.NewIntakeService(&intake.Ingester{Store: store, MaxBytes: cfg.MaxImageBytes}, prodRepo, fields)

	return &Deps{
		Auth:            authSvc,
		AuthHandler:     &AuthHandler{Auth: authSvc},
		ProductHandler:  &ProductHandler{Intake: intakeSvc, Catalog: catalogSvc},
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc},
		MediaDir:        store.Dir,
	}, nil
}
