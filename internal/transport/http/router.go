package http

import (
	"net/http"

	"github.com/go-openapi/runtime/middleware"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/domain"
	websocketTransport "github.com/kahvecikaan/buildingMicroservices/product-configurator/internal/transport/websocket"
)

func NewRouter(
	eh *EditorHandler,
	validator *domain.Validation,
	logger hclog.Logger,
	wsh *websocketTransport.Handler,
	corsConfig *CORSConfig,
) http.Handler {
	router := mux.NewRouter()

	mw := NewMiddleware(logger, validator, corsConfig)

	// Apply global middleware
	router.Use(mw.RecoveryMiddleware)
	router.Use(mw.LoggingMiddleware)

	// The WebSocket upgrade must see the raw connection, so it stays off the
	// compressed JSON subrouter.
	if wsh != nil {
		router.HandleFunc("/ws", wsh.HandleWebSocket).Methods("GET")
	}

	api := router.PathPrefix("/editor").Subrouter()
	api.Use(mw.ContentTypeMiddleware)
	api.Use(mw.CompressMiddleware)

	api.HandleFunc("", eh.GetEditor).Methods("GET")
	api.HandleFunc("/validation", eh.Validate).Methods("GET")
	api.HandleFunc("/quote", eh.Quote).Methods("GET")

	api.Handle("/product", ValidateBody[domain.ProductPatch](mw)(http.HandlerFunc(eh.UpdateProduct))).Methods("PUT")

	api.HandleFunc("/fields", eh.AddField).Methods("POST")
	api.Handle("/fields/move", ValidateBody[MoveRequest](mw)(http.HandlerFunc(eh.MoveField))).Methods("POST")
	api.Handle("/fields/{id}", ValidateBody[domain.FieldPatch](mw)(http.HandlerFunc(eh.UpdateField))).Methods("PATCH")
	api.HandleFunc("/fields/{id}", eh.RemoveField).Methods("DELETE")

	api.HandleFunc("/fields/{id}/options", eh.AddOption).Methods("POST")
	api.Handle("/fields/{id}/options/{optionID}", ValidateBody[domain.OptionPatch](mw)(http.HandlerFunc(eh.UpdateOption))).Methods("PATCH")
	api.HandleFunc("/fields/{id}/options/{optionID}", eh.RemoveOption).Methods("DELETE")

	api.Handle("/inputs/{id}", ValidateBody[InputRequest](mw)(http.HandlerFunc(eh.SetInput))).Methods("PUT")

	api.HandleFunc("/save", eh.Save).Methods("POST")
	api.HandleFunc("/cancel", eh.Cancel).Methods("POST")
	api.HandleFunc("/example", eh.LoadExample).Methods("POST")

	// Serve the swagger.yaml file
	router.HandleFunc("/swagger.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(swaggerSpec)
	}).Methods("GET")

	// Configure the Redoc middleware to point to the correct SpecURL
	swaggerOpts := middleware.RedocOpts{SpecURL: "/swagger.yaml"}
	swaggerHandler := middleware.Redoc(swaggerOpts, nil)
	router.Handle("/docs", swaggerHandler).Methods("GET")

	// CORS wraps the router so preflight requests are answered before
	// method matching rejects them.
	return mw.CORSMiddleware(router)
}
