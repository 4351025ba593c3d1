package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/EO-DataHub/eodhp-crm-console/api/services"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

func ListRecords[T any](table *services.Table[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services.WriteResponse(w, http.StatusOK, table.List())
	}
}

func CreateRecord[T any](table *services.Table[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context()).With().Str("resource", table.Name).Logger()

		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			services.HandleErrResponse(w, http.StatusBadRequest, err)
			return
		}

		record, err := table.Create(body)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to create record")
			services.HandleErrResponse(w, services.StatusFor(err), err)
			return
		}

		logger.Info().Msg("Record created")
		location := fmt.Sprintf("%s/%s", r.URL.Path, recordID(record))
		services.WriteResponse(w, http.StatusCreated, record, location)
	}
}

func UpdateRecord[T any](table *services.Table[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		logger := zerolog.Ctx(r.Context()).With().Str("resource", table.Name).Str("id", id).Logger()

		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			services.HandleErrResponse(w, http.StatusBadRequest, err)
			return
		}

		record, err := table.Update(id, body)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to update record")
			services.HandleErrResponse(w, services.StatusFor(err), err)
			return
		}

		services.WriteResponse(w, http.StatusOK, record)
	}
}

func DeleteRecord[T any](table *services.Table[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		logger := zerolog.Ctx(r.Context()).With().Str("resource", table.Name).Str("id", id).Logger()

		if err := table.Delete(id); err != nil {
			logger.Warn().Err(err).Msg("Failed to delete record")
			services.HandleErrResponse(w, services.StatusFor(err), err)
			return
		}

		services.WriteResponse(w, http.StatusNoContent, nil)
	}
}

// recordID reads the ID of any record type that exposes one.
func recordID(record any) string {
	switch rec := record.(type) {
	case interface{ GetID() string }:
		return rec.GetID()
	default:
		return ""
	}
}
