package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sabahotel/backoffice/internal/model"
	"github.com/sabahotel/backoffice/internal/repository"
)

// GuestHandler exposes guest CRUD plus phone and address sub-resources.
type GuestHandler struct {
	Guests *repository.GuestRepo
}

func NewGuestHandler(g *repository.GuestRepo) *GuestHandler {
	return &GuestHandler{Guests: g}
}

type guestReq struct {
	Name       string  `json:"name"`
	Family     string  `json:"family"`
	NationalID *string `json:"national_id"`
	Passport   *string `json:"passport"`
	Birthdate  string  `json:"birthdate"` // YYYY-MM-DD
	Email      string  `json:"email"`
}

type guestResp struct {
	ID         uint64  `json:"id"`
	Name       string  `json:"name"`
	Family     string  `json:"family"`
	NationalID *string `json:"national_id,omitempty"`
	Passport   *string `json:"passport,omitempty"`
	Birthdate  string  `json:"birthdate"`
	Email      string  `json:"email"`
}

func toGuestResp(g model.Guest) guestResp {
	return guestResp{
		ID:         g.ID,
		Name:       g.Name,
		Family:     g.Family,
		NationalID: g.NationalID,
		Passport:   g.Passport,
		Birthdate:  g.Birthdate.Format("2006-01-02"),
		Email:      g.Email,
	}
}

// Create registers a new guest.
func (h *GuestHandler) Create(c echo.Context) error {
	var req guestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Family = strings.TrimSpace(req.Family)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Family == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/family/email required"})
	}
	birthdate, err := time.Parse("2006-01-02", req.Birthdate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "birthdate must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Guests.Create(ctx, model.Guest{
		Name:       req.Name,
		Family:     req.Family,
		NationalID: req.NationalID,
		Passport:   req.Passport,
		Birthdate:  birthdate,
		Email:      req.Email,
	})
	if err != nil {
		switch err {
		case repository.ErrGuestIdentity:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case repository.ErrEmailExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create guest failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// List returns all guests.
func (h *GuestHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	guests, err := h.Guests.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]guestResp, 0, len(guests))
	for _, g := range guests {
		out = append(out, toGuestResp(g))
	}
	return c.JSON(http.StatusOK, echo.Map{"guests": out})
}

// Get returns one guest with phones and addresses.
func (h *GuestHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	g, err := h.Guests.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	phones, err := h.Guests.ListPhones(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	addresses, err := h.Guests.ListAddresses(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	phoneOut := make([]phoneResp, 0, len(phones))
	for _, p := range phones {
		phoneOut = append(phoneOut, phoneResp{ID: p.ID, Phone: p.Phone})
	}
	addressOut := make([]addressResp, 0, len(addresses))
	for _, a := range addresses {
		addressOut = append(addressOut, addressResp{
			ID: a.ID, Province: a.Province, City: a.City, Street: a.Street, Plaque: a.Plaque,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"guest":     toGuestResp(g),
		"phones":    phoneOut,
		"addresses": addressOut,
	})
}

// Delete removes a guest.  Guests with reservations cannot be removed.
func (h *GuestHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Guests.Delete(ctx, id); err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "guest has reservations"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

type phoneReq struct {
	Phone string `json:"phone"`
}

type phoneResp struct {
	ID    uint64 `json:"id"`
	Phone string `json:"phone"`
}

// AddPhone attaches a phone number to a guest.
func (h *GuestHandler) AddPhone(c echo.Context) error {
	guestID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}
	var req phoneReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Phone) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Guests.AddPhone(ctx, guestID, req.Phone)
	if err != nil {
		if err == repository.ErrPhoneExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "phone already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "add phone failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// DeletePhone removes one phone row.
func (h *GuestHandler) DeletePhone(c echo.Context) error {
	phoneID, err := pathID(c, "phoneID")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid phone id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Guests.DeletePhone(ctx, phoneID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "phone not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

type addressReq struct {
	Province string `json:"province"`
	City     string `json:"city"`
	Street   string `json:"street"`
	Plaque   string `json:"plaque"`
}

type addressResp struct {
	ID       uint64 `json:"id"`
	Province string `json:"province"`
	City     string `json:"city"`
	Street   string `json:"street"`
	Plaque   string `json:"plaque"`
}

// AddAddress attaches an address to a guest.
func (h *GuestHandler) AddAddress(c echo.Context) error {
	guestID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}
	var req addressReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Province) == "" || strings.TrimSpace(req.City) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "province/city required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Guests.AddAddress(ctx, model.GuestAddress{
		GuestID:  guestID,
		Province: req.Province,
		City:     req.City,
		Street:   req.Street,
		Plaque:   req.Plaque,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "add address failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// DeleteAddress removes one address row.
func (h *GuestHandler) DeleteAddress(c echo.Context) error {
	addressID, err := pathID(c, "addressID")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid address id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Guests.DeleteAddress(ctx, addressID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "address not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
