package router

import "net/http"

type AccountRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

type UserRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

type TransferRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

type ConverterRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

func New(
	accountController AccountRouteRegistrar,
	userController UserRouteRegistrar,
	transferController TransferRouteRegistrar,
	converterController ConverterRouteRegistrar,
	authMiddleware func(http.Handler) http.Handler,
) *http.ServeMux {
	mux := http.NewServeMux()
	registerSwaggerRoutes(mux)

	if accountController != nil {
		accountController.RegisterRoutes(mux, authMiddleware)
	}
	if userController != nil {
		userController.RegisterRoutes(mux, authMiddleware)
	}
	if transferController != nil {
		transferController.RegisterRoutes(mux, authMiddleware)
	}
	if converterController != nil {
		converterController.RegisterRoutes(mux, authMiddleware)
	}

	return mux
}
