package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/lintang-b-s/osmroute/pkg/util"
	"go.uber.org/zap"
)

type envelope map[string]any

func (api *routingAPI) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}

	for key, value := range headers {
		w.Header()[key] = value
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func newErrorResponse(status int, message string) errorResponse {
	var resp errorResponse
	resp.Error.Code = http.StatusText(status)
	resp.Error.Message = message
	return resp
}

func (api *routingAPI) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	if err := api.writeJSON(w, status, newErrorResponse(status, message), nil); err != nil {
		api.log.Error("writing error response", zap.Error(err), zap.String("path", r.URL.Path))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (api *routingAPI) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (api *routingAPI) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.log.Error("server error", zap.Error(err), zap.String("method", r.Method), zap.String("path", r.URL.Path))
	api.errorResponse(w, r, http.StatusInternalServerError, util.MessageInternalServerError)
}

// statusCode. http status for an error code from pkg/util.
func statusCode(err error) int {
	switch util.ErrorCode(err) {
	case util.ErrInvalidInput:
		return http.StatusBadRequest
	case util.ErrNotFound:
		return http.StatusNotFound
	case util.ErrUnreachable:
		return http.StatusUnprocessableEntity
	case util.ErrUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCode. writes err with the status of its code. internal errors hide their message.
func (api *routingAPI) getStatusCode(w http.ResponseWriter, r *http.Request, err error) {
	status := statusCode(err)
	if status == http.StatusInternalServerError {
		api.ServerErrorResponse(w, r, err)
		return
	}
	if status == http.StatusBadGateway {
		api.log.Warn("upstream error", zap.Error(err), zap.String("path", r.URL.Path))
	}
	api.errorResponse(w, r, status, err.Error())
}

func translateError(err error, trans ut.Translator) []error {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}

	errs := make([]error, 0, len(validatorErrs))
	for _, e := range validatorErrs {
		errs = append(errs, errors.New(e.Translate(trans)))
	}
	return errs
}

// validateRequest. nil or a "validation error: [...]" error with english messages per field.
func validateRequest(request any) error {
	validate := validator.New()
	err := validate.Struct(request)
	if err == nil {
		return nil
	}

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)
	vv := translateError(err, trans)
	vvString := []string{}
	for _, v := range vv {
		vvString = append(vvString, v.Error())
	}
	return fmt.Errorf("validation error: %v", vvString)
}
