package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/outraft/find-my-way/pkg/datastructure"
	"github.com/outraft/find-my-way/pkg/server"
)

type NavigationService interface {
	ShortestPath(ctx context.Context, startID, endID string) (datastructure.Itinerary, string, error)
	ShortestPathBetweenPoints(ctx context.Context, srcLat, srcLon, dstLat, dstLon float64) (datastructure.Itinerary, string, error)
	NearestStop(ctx context.Context, lat, lon float64) (datastructure.KVStop, float64, error)
	GetStop(ctx context.Context, id string) (datastructure.Stop, error)
	FindStopsByName(ctx context.Context, query string) ([]datastructure.Stop, error)
	WalkingDistanceM(from, to datastructure.Coordinate) float64
}

type NavigationHandler struct {
	svc NavigationService
}

func NavigatorRouter(r *chi.Mux, svc NavigationService) {
	handler := &NavigationHandler{svc}

	r.Group(func(r chi.Router) {
		r.Route("/api/navigation", func(r chi.Router) {
			r.Post("/route", handler.Route)
			r.Post("/route-by-coord", handler.RouteByCoord)
			r.Post("/nearest-stop", handler.NearestStop)
		})
		r.Route("/api/stops", func(r chi.Router) {
			r.Get("/search", handler.SearchStops)
			r.Get("/{id}", handler.GetStop)
		})
	})
}

// RouteRequest model info
//
//	@Description	request body for shortest path between two stop ids
type RouteRequest struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

func (s *RouteRequest) Bind(r *http.Request) error {
	if s.Start == "" || s.End == "" {
		return errors.New("invalid request")
	}
	return nil
}

// RouteByCoordRequest model info
//
//	@Description	request body for shortest path between two raw coordinates
type RouteByCoordRequest struct {
	SrcLat float64 `json:"src_lat" validate:"required,lt=90,gt=-90"`
	SrcLon float64 `json:"src_lon" validate:"required,lt=180,gt=-180"`
	DstLat float64 `json:"dst_lat" validate:"required,lt=90,gt=-90"`
	DstLon float64 `json:"dst_lon" validate:"required,lt=180,gt=-180"`
}

func (s *RouteByCoordRequest) Bind(r *http.Request) error {
	return nil
}

// NearestStopRequest model info
//
//	@Description	request body for snapping a coordinate to the closest stop
type NearestStopRequest struct {
	Lat float64 `json:"lat" validate:"required,lt=90,gt=-90"`
	Lon float64 `json:"lon" validate:"required,lt=180,gt=-180"`
}

func (s *NearestStopRequest) Bind(r *http.Request) error {
	return nil
}

type SegmentResponse struct {
	StopID        string                   `json:"stop_id"`
	Name          string                   `json:"name"`
	Coordinate    datastructure.Coordinate `json:"coordinate"`
	Mode          string                   `json:"mode"`
	Route         string                   `json:"route,omitempty"`
	SegmentCost   float64                  `json:"segment_cost"`
	WalkDistanceM float64                  `json:"walk_distance_m,omitempty"`
}

type RouteResponse struct {
	Segments  []SegmentResponse `json:"segments"`
	TotalCost float64           `json:"total_cost"`
	Polyline  string            `json:"polyline,omitempty"`
}

func (h *NavigationHandler) renderRouteResponse(it datastructure.Itinerary, poly string) *RouteResponse {
	segments := make([]SegmentResponse, 0, len(it.Steps))
	for i, step := range it.Steps {
		seg := SegmentResponse{
			StopID:      step.StopID,
			Name:        step.Name,
			Coordinate:  step.Coordinate,
			Mode:        step.Mode,
			Route:       step.Route,
			SegmentCost: step.SegmentCost,
		}
		if step.Mode == datastructure.ModeWalk && i > 0 {
			seg.WalkDistanceM = h.svc.WalkingDistanceM(it.Steps[i-1].Coordinate, step.Coordinate)
		}
		segments = append(segments, seg)
	}
	return &RouteResponse{
		Segments:  segments,
		TotalCost: it.TotalCost,
		Polyline:  poly,
	}
}

// Route
//
//	@Summary		shortest path between two stops of the transit graph
//	@Description	computes the minimum-cost itinerary with transfer penalties between two stop ids
//	@Tags			navigations
//	@Param			body	body	RouteRequest	true	"request body shortest path"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigation/route [post]
//	@Success		200	{object}	RouteResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
//	@Failure		422	{object}	ErrResponse
func (h *NavigationHandler) Route(w http.ResponseWriter, r *http.Request) {
	data := &RouteRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !validateRequest(w, r, data) {
		return
	}

	it, poly, err := h.svc.ShortestPath(r.Context(), data.Start, data.End)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, h.renderRouteResponse(it, poly))
}

// RouteByCoord
//
//	@Summary		shortest path between two raw coordinates
//	@Description	snaps both coordinates to their nearest stop, then routes between them
//	@Tags			navigations
//	@Param			body	body	RouteByCoordRequest	true	"request body shortest path by coordinate"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigation/route-by-coord [post]
//	@Success		200	{object}	RouteResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
func (h *NavigationHandler) RouteByCoord(w http.ResponseWriter, r *http.Request) {
	data := &RouteByCoordRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !validateRequest(w, r, data) {
		return
	}

	it, poly, err := h.svc.ShortestPathBetweenPoints(r.Context(), data.SrcLat, data.SrcLon, data.DstLat, data.DstLon)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, h.renderRouteResponse(it, poly))
}

type NearestStopResponse struct {
	StopID    string  `json:"stop_id"`
	Name      string  `json:"name"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	DistanceM float64 `json:"distance_m"`
}

// NearestStop
//
//	@Summary		nearest stop to a coordinate
//	@Description	resolves a raw coordinate to the closest stop of the transit graph
//	@Tags			navigations
//	@Param			body	body	NearestStopRequest	true	"request body nearest stop"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigation/nearest-stop [post]
//	@Success		200	{object}	NearestStopResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		404	{object}	ErrResponse
func (h *NavigationHandler) NearestStop(w http.ResponseWriter, r *http.Request) {
	data := &NearestStopRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !validateRequest(w, r, data) {
		return
	}

	stop, distM, err := h.svc.NearestStop(r.Context(), data.Lat, data.Lon)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &NearestStopResponse{
		StopID:    stop.ID,
		Name:      stop.Name,
		Lat:       stop.Lat,
		Lon:       stop.Lon,
		DistanceM: distM,
	})
}

type StopResponse struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// GetStop
//
//	@Summary		stop detail
//	@Tags			stops
//	@Produce		application/json
//	@Router			/stops/{id} [get]
//	@Success		200	{object}	StopResponse
//	@Failure		404	{object}	ErrResponse
func (h *NavigationHandler) GetStop(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	stop, err := h.svc.GetStop(r.Context(), id)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &StopResponse{ID: stop.ID, Name: stop.Name, Lat: stop.Lat, Lon: stop.Lon})
}

type SearchStopsResponse struct {
	Stops []StopResponse `json:"stops"`
}

// SearchStops
//
//	@Summary		search stops by display name substring
//	@Tags			stops
//	@Produce		application/json
//	@Router			/stops/search [get]
//	@Success		200	{object}	SearchStopsResponse
//	@Failure		400	{object}	ErrResponse
func (h *NavigationHandler) SearchStops(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("name")

	stops, err := h.svc.FindStopsByName(r.Context(), query)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	resp := SearchStopsResponse{Stops: make([]StopResponse, 0, len(stops))}
	for _, stop := range stops {
		resp.Stops = append(resp.Stops, StopResponse{ID: stop.ID, Name: stop.Name, Lat: stop.Lat, Lon: stop.Lon})
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

func validateRequest(w http.ResponseWriter, r *http.Request, data interface{}) bool {
	validate := validator.New()
	if err := validate.Struct(data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return false
	}
	return true
}

func renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, server.ErrNotFound):
		render.Render(w, r, ErrNotFoundRend(err))
	case errors.Is(err, server.ErrBadParamInput):
		render.Render(w, r, ErrInvalidRequest(err))
	case errors.Is(err, server.ErrUnprocessableEntity):
		render.Render(w, r, ErrUnprocessableRend(err))
	default:
		render.Render(w, r, ErrInternalServerErrorRend(errors.New("internal server error")))
	}
}

// ErrResponse model info
//
//	@Description	model for error responses
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText    string   `json:"status"`          // user-level status message
	AppCode       int64    `json:"code,omitempty"`  // application-specific error code
	ErrorText     string   `json:"error,omitempty"` // application-level error message, for debugging
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrValidation(err error, errV []error) render.Renderer {
	vv := []string{}
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
		ErrValidation:  vv,
	}
}

func ErrNotFoundRend(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 404,
		StatusText:     "Not found.",
		ErrorText:      err.Error(),
	}
}

func ErrUnprocessableRend(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 422,
		StatusText:     "Unprocessable request.",
		ErrorText:      err.Error(),
	}
}

func ErrInternalServerErrorRend(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 500,
		StatusText:     "Internal server error.",
		ErrorText:      err.Error(),
	}
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := err.(validator.ValidationErrors)
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans))
		errs = append(errs, translatedErr)
	}
	return errs
}
