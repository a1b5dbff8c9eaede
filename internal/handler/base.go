package handler

import (
	"time"

	"github.com/deckwise/backend/internal/middleware"
	"github.com/deckwise/backend/internal/response"
	"github.com/deckwise/backend/internal/server"
	"github.com/deckwise/backend/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler is the base handler type holding shared application dependencies.
// Concrete handlers embed it to reach config, logger, db, redis, and jobs
// through *server.Server.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler. Returned by value: the struct only
// carries a pointer, so copies are cheap and share the same Server.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint function: it receives the validated
// payload and returns a response value or an error.
type HandlerFunc[Res any] func(c echo.Context, v *validation.Validated) (Res, error)

// HandlerFuncNoContent is a typed endpoint function for routes returning no
// body.
type HandlerFuncNoContent func(c echo.Context, v *validation.Validated) error

// ResponseHandler defines how a successful handler result is written to the
// HTTP response, plus per-response-type observability hooks.
type ResponseHandler interface {
	// Handle writes the HTTP response for the given result.
	Handle(c echo.Context, result interface{}) error

	// GetOperation returns an operation name used in structured logging.
	GetOperation() string

	// AddAttributes attaches New Relic attributes derived from the result.
	AddAttributes(txn *newrelic.Transaction, result interface{})
}

// JSONResponseHandler writes the result as a success envelope with a fixed
// status code.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result interface{}) error {
	return response.Write(c, response.SuccessWithStatus(result, h.status))
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	// http.status_code is already set by tracing middleware.
}

// NoContentResponseHandler writes responses with no body (typically 204).
type NoContentResponseHandler struct {
	status int
}

func (h NoContentResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.NoContent(h.status)
}

func (h NoContentResponseHandler) GetOperation() string {
	return "handler_no_content"
}

func (h NoContentResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	// http.status_code is already set by tracing middleware.
}

// handleRequest is the shared execution pipeline for all endpoints. It
// centralizes binding and schema validation, structured logging, New Relic
// attributes and error reporting, phase timing, and response writing.
//
// A nil schema skips the validation phase entirely (GET routes with no
// body); the handler then receives a nil *validation.Validated.
func handleRequest(
	c echo.Context,
	schema *validation.Schema,
	handler func(c echo.Context, v *validation.Validated) (interface{}, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	method := c.Request().Method
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
		responseHandler.AddAttributes(txn, nil)
	}

	loggerBuilder := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("method", method).
		Str("route", route)

	if schema != nil {
		loggerBuilder = loggerBuilder.Str("schema", schema.Name())
	}

	logger := loggerBuilder.Logger()

	logger.Debug().Msg("handling request")

	var validated *validation.Validated

	if schema != nil {
		validationStart := time.Now()

		v, err := validation.BindAndValidate(c, schema)
		if err != nil {
			validationDuration := time.Since(validationStart)

			logger.Warn().
				Err(err).
				Dur("validation_duration", validationDuration).
				Msg("request validation failed")

			if txn != nil {
				txn.NoticeError(nrpkgerrors.Wrap(err))
				txn.AddAttribute("validation.status", "failed")
				txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
			}

			// The global error handler formats the envelope.
			return err
		}

		validated = v
		validationDuration := time.Since(validationStart)

		if txn != nil {
			txn.AddAttribute("validation.status", "success")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}

		logger.Debug().
			Dur("validation_duration", validationDuration).
			Msg("request validation successful")
	}

	handlerStart := time.Now()
	result, err := handler(c, validated)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		totalDuration := time.Since(start)

		logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", totalDuration).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
			txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		}
		return err
	}

	totalDuration := time.Since(start)

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())

		responseHandler.AddAttributes(txn, result)
	}

	logger.Info().
		Dur("handler_duration", handlerDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// Handle wraps a typed handler with validation, error handling, logging,
// and tracing, returning an echo.HandlerFunc registrable on routes.
//
//	router.POST("/decks", handler.Handle(h.Handler, h.createDeck, http.StatusCreated, createDeckSchema))
func Handle[Res any](
	h Handler,
	handler HandlerFunc[Res],
	status int,
	schema *validation.Schema,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, schema, func(c echo.Context, v *validation.Validated) (interface{}, error) {
			return handler(c, v)
		}, JSONResponseHandler{status: status})
	}
}

// HandleNoContent wraps a handler for endpoints that return no body.
func HandleNoContent(
	h Handler,
	handler HandlerFuncNoContent,
	status int,
	schema *validation.Schema,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, schema, func(c echo.Context, v *validation.Validated) (interface{}, error) {
			err := handler(c, v)
			return nil, err
		}, NoContentResponseHandler{status: status})
	}
}
