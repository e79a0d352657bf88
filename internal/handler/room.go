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

// RoomHandler exposes room registration, listings and status changes.
type RoomHandler struct {
	Rooms *repository.RoomRepo
}

func NewRoomHandler(r *repository.RoomRepo) *RoomHandler {
	return &RoomHandler{Rooms: r}
}

type roomReq struct {
	RoomID     uint64  `json:"room_id"`
	Type       string  `json:"type"`
	Capacity   uint32  `json:"capacity"`
	PriceCents int64   `json:"price_cents"`
	Features   *string `json:"features"`
	Floor      int32   `json:"floor"`
	BedType    string  `json:"bed_type"`
	Smoking    bool    `json:"smoking"`
	Status     string  `json:"status"`
}

type roomResp struct {
	RoomID     uint64  `json:"room_id"`
	Type       string  `json:"type"`
	Capacity   uint32  `json:"capacity"`
	PriceCents int64   `json:"price_cents"`
	Features   *string `json:"features,omitempty"`
	Floor      int32   `json:"floor"`
	BedType    string  `json:"bed_type"`
	Smoking    bool    `json:"smoking"`
	Status     string  `json:"status"`
}

func toRoomResp(r model.Room) roomResp {
	return roomResp{
		RoomID:     r.ID,
		Type:       r.Type,
		Capacity:   r.Capacity,
		PriceCents: r.PriceCents,
		Features:   r.Features,
		Floor:      r.Floor,
		BedType:    r.BedType,
		Smoking:    r.Smoking,
		Status:     r.Status,
	}
}

// Create registers a room under its staff-assigned number.
func (h *RoomHandler) Create(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id required"})
	}
	if req.Capacity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity must be positive"})
	}
	if req.PriceCents < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_cents must not be negative"})
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status == "" {
		status = model.RoomAvailable
	}
	if !model.ValidRoomStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown room status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err := h.Rooms.Create(ctx, model.Room{
		ID:         req.RoomID,
		Type:       req.Type,
		Capacity:   req.Capacity,
		PriceCents: req.PriceCents,
		Features:   req.Features,
		Floor:      req.Floor,
		BedType:    req.BedType,
		Smoking:    req.Smoking,
		Status:     status,
	})
	if err != nil {
		if err == repository.ErrRoomExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room number already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"room_id": req.RoomID})
}

// List returns all rooms, optionally filtered by ?status=.
func (h *RoomHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var (
		rooms []model.Room
		err   error
	)
	if status := strings.ToLower(strings.TrimSpace(c.QueryParam("status"))); status != "" {
		if !model.ValidRoomStatus(status) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown room status"})
		}
		rooms, err = h.Rooms.ListByStatus(ctx, status)
	} else {
		rooms, err = h.Rooms.List(ctx)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]roomResp, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomResp(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": out})
}

// Get returns one room.
func (h *RoomHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toRoomResp(room))
}

type roomStatusReq struct {
	Status string `json:"status"`
}

// UpdateStatus moves a room to a new state (e.g. cleaning done).
func (h *RoomHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req roomStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if !model.ValidRoomStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown room status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Existence check first: UPDATE alone cannot distinguish a missing
	// room from an unchanged status.
	if _, err := h.Rooms.GetByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.Rooms.UpdateStatus(ctx, id, status); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"room_id": id, "status": status})
}

// Delete removes a room with no reservation history.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Rooms.Delete(ctx, id); err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "room has reservation history"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
