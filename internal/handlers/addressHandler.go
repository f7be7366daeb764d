package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/swippe/quickcommerce/internal/api"
	"github.com/swippe/quickcommerce/internal/data/store"
	"github.com/swippe/quickcommerce/internal/domain/commerceModel"
	"github.com/swippe/quickcommerce/pkg/logger_i"
)

var (
	_addresses *store.AddressStore
	logADH     *logger_i.Logger
)

func InitAddressHandler(addresses *store.AddressStore) {
	_addresses = addresses
	logADH = logger_i.NewLogger("AddressHandler")
}

func addressFromRequest(req api.AddressRequest, userId int64) (commerceModel.Address, string) {
	if strings.TrimSpace(req.Name) == "" {
		return commerceModel.Address{}, "name is required"
	}
	if strings.TrimSpace(req.Line1) == "" {
		return commerceModel.Address{}, "address_line1 is required"
	}
	return commerceModel.Address{
		UserId:    userId,
		Name:      strings.TrimSpace(req.Name),
		Phone:     strings.TrimSpace(req.Phone),
		Line1:     strings.TrimSpace(req.Line1),
		Line2:     strings.TrimSpace(req.Line2),
		City:      strings.TrimSpace(req.City),
		State:     strings.TrimSpace(req.State),
		Pincode:   strings.TrimSpace(req.Pincode),
		Landmark:  strings.TrimSpace(req.Landmark),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		IsDefault: req.IsDefault,
	}, ""
}

// CreateAddressHandler godoc
// @Summary      Add a delivery address
// @Tags         Addresses
// @Accept       json
// @Produce      json
// @Param        request  body      api.AddressRequest  true  "Address fields"
// @Success      201      {object}  commerceModel.Address
// @Failure      400      {object}  handlers.errorBody
// @Security     BearerAuth
// @Router       /api/addresses [post]
func CreateAddressHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req api.AddressRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	address, problem := addressFromRequest(req, caller.Id)
	if problem != "" {
		writeError(w, http.StatusBadRequest, problem)
		return
	}

	id, err := _addresses.Create(r.Context(), address)
	if err != nil {
		logADH.Error("Address create failed", "userId", caller.Id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not save address")
		return
	}

	saved, err := _addresses.GetByIdForUser(r.Context(), id, caller.Id)
	if err != nil {
		logADH.Error("Address reload failed", "addressId", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not save address")
		return
	}
	writeJsonResponse(w, http.StatusCreated, saved)
}

// ListAddressesHandler godoc
// @Summary      List delivery addresses
// @Tags         Addresses
// @Produce      json
// @Success      200  {array}  commerceModel.Address
// @Security     BearerAuth
// @Router       /api/addresses [get]
func ListAddressesHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	addresses, err := _addresses.ListByUser(r.Context(), caller.Id)
	if err != nil {
		logADH.Error("Address listing failed", "userId", caller.Id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not list addresses")
		return
	}
	writeJsonResponse(w, http.StatusOK, addresses)
}

// UpdateAddressHandler godoc
// @Summary      Update an address
// @Tags         Addresses
// @Accept       json
// @Produce      json
// @Param        id       path      int                 true  "Address ID"
// @Param        request  body      api.AddressRequest  true  "Address fields"
// @Success      200      {object}  commerceModel.Address
// @Failure      404      {object}  handlers.errorBody
// @Security     BearerAuth
// @Router       /api/addresses/{id} [put]
func UpdateAddressHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, ok := pathId(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid address id")
		return
	}

	var req api.AddressRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	address, problem := addressFromRequest(req, caller.Id)
	if problem != "" {
		writeError(w, http.StatusBadRequest, problem)
		return
	}
	address.Id = id

	if err := _addresses.Update(r.Context(), address); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "address not found")
			return
		}
		logADH.Error("Address update failed", "addressId", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not update address")
		return
	}

	saved, err := _addresses.GetByIdForUser(r.Context(), id, caller.Id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not update address")
		return
	}
	writeJsonResponse(w, http.StatusOK, saved)
}

// DeleteAddressHandler godoc
// @Summary      Delete an address
// @Tags         Addresses
// @Produce      json
// @Param        id   path      int  true  "Address ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  handlers.errorBody
// @Security     BearerAuth
// @Router       /api/addresses/{id} [delete]
func DeleteAddressHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, ok := pathId(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid address id")
		return
	}

	if err := _addresses.Delete(r.Context(), id, caller.Id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "address not found")
			return
		}
		logADH.Error("Address delete failed", "addressId", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not delete address")
		return
	}
	writeJsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// DeliveryLocationHandler godoc
// @Summary      Default delivery destination
// @Description  The default address with its GPS coordinates, for the live delivery map.
// @Tags         Addresses
// @Produce      json
// @Success      200  {object}  commerceModel.Address
// @Failure      404  {object}  handlers.errorBody
// @Security     BearerAuth
// @Router       /api/tracking [get]
func DeliveryLocationHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	address, err := _addresses.GetDefault(r.Context(), caller.Id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no default address set")
			return
		}
		logADH.Error("Default address lookup failed", "userId", caller.Id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load delivery location")
		return
	}
	writeJsonResponse(w, http.StatusOK, address)
}

// SetDefaultAddressHandler godoc
// @Summary      Make an address the default
// @Tags         Addresses
// @Produce      json
// @Param        id   path      int  true  "Address ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  handlers.errorBody
// @Security     BearerAuth
// @Router       /api/addresses/{id}/set-default [post]
func SetDefaultAddressHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := userFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, ok := pathId(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid address id")
		return
	}

	if err := _addresses.SetDefault(r.Context(), id, caller.Id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "address not found")
			return
		}
		logADH.Error("Set default address failed", "addressId", id, "error", err)
		writeError(w, http.StatusInternalServerError, "could not set default")
		return
	}
	writeJsonResponse(w, http.StatusOK, map[string]string{"status": "default set"})
}
