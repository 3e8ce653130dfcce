package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/vintnersrow/storefront/internal/config"
	cartcommands "github.com/vintnersrow/storefront/internal/modules/cart/commands"
	cartqueries "github.com/vintnersrow/storefront/internal/modules/cart/queries"
	catalogdomain "github.com/vintnersrow/storefront/internal/modules/catalog/domain"
	catalogqueries "github.com/vintnersrow/storefront/internal/modules/catalog/queries"
	contentdomain "github.com/vintnersrow/storefront/internal/modules/content/domain"
	contentqueries "github.com/vintnersrow/storefront/internal/modules/content/queries"
	"github.com/vintnersrow/storefront/internal/modules/core"
	sommeliercommands "github.com/vintnersrow/storefront/internal/modules/sommelier/commands"
	sommelierqueries "github.com/vintnersrow/storefront/internal/modules/sommelier/queries"
	"github.com/vintnersrow/storefront/internal/platform"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/migrate-go"
	"github.com/go-chi/chi"
	_ "github.com/lib/pq"
)

type Server interface {
	Start() error
	Stop() error
}

var _ Server = &HTTPServer{}

// HTTPServer is the composition root of the storefront API.
type HTTPServer struct {
	server *http.Server
	db     *sql.DB
}

func NewHTTPServer(config config.Config) (Server, error) {
	baseCtx := context.Background()

	core.SetLogger(config.Logger)

	db, err := sql.Open("postgres", config.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if err := migrate.Run(baseCtx, db, config.MigrationsPath); err != nil {
		return nil, err
	}

	platformClient := platform.NewClient(
		config.Platform.BaseURL,
		config.Platform.AccessToken,
		config.Platform.RequestDelay,
	)

	requestLoggingBehavior := core.RequestLoggingBehavior{Logger: config.Logger}
	handlerErrorLoggingBehavior := core.HandlerErrorLoggingBehavior{Logger: config.Logger}
	requestValidationBehavior := core.RequestValidationBehavior{}

	mediator.RegisterPipelineBehavior(&requestLoggingBehavior)
	mediator.RegisterPipelineBehavior(&handlerErrorLoggingBehavior)
	mediator.RegisterPipelineBehavior(&requestValidationBehavior)

	// handler registration

	// catalog

	listWinesHandler := catalogqueries.NewListWinesQueryHandler(db)
	err = mediator.RegisterRequestHandler[catalogqueries.ListWinesQuery, []catalogdomain.Wine](
		listWinesHandler,
	)
	if err != nil {
		return nil, err
	}

	getWineBySlugHandler := catalogqueries.NewGetWineBySlugQueryHandler(db)
	err = mediator.RegisterRequestHandler[catalogqueries.GetWineBySlugQuery, catalogqueries.WineDetails](
		getWineBySlugHandler,
	)
	if err != nil {
		return nil, err
	}

	// cart

	createCartHandler := cartcommands.NewCreateCartCommandHandler(platformClient)
	err = mediator.RegisterRequestHandler[cartcommands.CreateCartCommand, platform.Cart](
		createCartHandler,
	)
	if err != nil {
		return nil, err
	}

	addCartItemHandler := cartcommands.NewAddCartItemCommandHandler(platformClient)
	err = mediator.RegisterRequestHandler[cartcommands.AddCartItemCommand, platform.Cart](
		addCartItemHandler,
	)
	if err != nil {
		return nil, err
	}

	getCartHandler := cartqueries.NewGetCartQueryHandler(platformClient)
	err = mediator.RegisterRequestHandler[cartqueries.GetCartQuery, platform.Cart](
		getCartHandler,
	)
	if err != nil {
		return nil, err
	}

	// content

	getPageHandler := contentqueries.NewGetPageQueryHandler(db)
	err = mediator.RegisterRequestHandler[contentqueries.GetPageQuery, contentdomain.Page](
		getPageHandler,
	)
	if err != nil {
		return nil, err
	}

	getMerchantConfigHandler := contentqueries.NewGetMerchantConfigQueryHandler(db)
	err = mediator.RegisterRequestHandler[contentqueries.GetMerchantConfigQuery, map[string]string](
		getMerchantConfigHandler,
	)
	if err != nil {
		return nil, err
	}

	// sommelier

	appendMemoryHandler := sommeliercommands.NewAppendMemoryCommandHandler(db)
	err = mediator.RegisterRequestHandler[sommeliercommands.AppendMemoryCommand, core.Unit](
		appendMemoryHandler,
	)
	if err != nil {
		return nil, err
	}

	getContextHandler := sommelierqueries.NewGetContextQueryHandler(db)
	err = mediator.RegisterRequestHandler[sommelierqueries.GetContextQuery, sommelierqueries.AgentContext](
		getContextHandler,
	)
	if err != nil {
		return nil, err
	}

	// http

	router := chi.NewRouter()
	router.Use(core.CorrelationIDMiddleware)

	router.Get("/wines", catalogqueries.HandleListWines)
	router.Get("/wines/{slug}", catalogqueries.HandleGetWineBySlug)

	router.Post("/carts", cartcommands.HandleCreateCart)
	router.Get("/carts/{id}", cartqueries.HandleGetCart)
	router.Post("/carts/{id}/items", cartcommands.HandleAddCartItem)

	router.Get("/pages/{slug}", contentqueries.HandleGetPage)
	router.Get("/merchant", contentqueries.HandleGetMerchantConfig)

	router.Post("/sommelier/sessions/{id}/memory", sommeliercommands.HandleAppendMemory)
	router.Get("/sommelier/sessions/{id}/context", sommelierqueries.HandleGetContext)

	server := http.Server{
		Addr:    net.JoinHostPort("", fmt.Sprintf("%d", config.Port)),
		Handler: router,
		BaseContext: func(net.Listener) context.Context {
			return baseCtx
		},
	}

	return &HTTPServer{server: &server, db: db}, nil
}

func (s *HTTPServer) Start() error {
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *HTTPServer) Stop() error {
	if err := s.server.Close(); err != nil {
		return err
	}

	return s.db.Close()
}
