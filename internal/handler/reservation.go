package handler

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sabahotel/backoffice/internal/model"
	"github.com/sabahotel/backoffice/internal/queue"
	"github.com/sabahotel/backoffice/internal/repository"
	queuepublisher "github.com/sabahotel/backoffice/internal/service"
)

// ReservationHandler exposes booking, cancellation, check-out and
// payment endpoints.  Lifecycle changes are mirrored onto the activity
// queue best-effort; a broker outage never fails the request.
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
}

func NewReservationHandler(r *repository.ReservationRepo) *ReservationHandler {
	return &ReservationHandler{Reservations: r}
}

type createReservationReq struct {
	GuestID        uint64   `json:"guest_id"`
	CheckIn        string   `json:"check_in"`  // YYYY-MM-DD
	CheckOut       string   `json:"check_out"` // YYYY-MM-DD
	NumPeople      uint32   `json:"num_people"`
	Status         string   `json:"status"`
	TotalCostCents int64    `json:"total_cost_cents"`
	PaymentCents   int64    `json:"payment_cents"`
	DiscountCents  int64    `json:"discount_cents"`
	RoomIDs        []uint64 `json:"room_ids"`
}

// dedupeIDs drops repeated ids while preserving first-seen order.
func dedupeIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// publish sends a reservation event to the activity queue.  Failures
// are logged and swallowed.
func publish(ev queue.ReservationEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := queuepublisher.PublishReservationEvent(ctx, ev); err != nil {
		log.Printf("reservation: publish %s event failed: %v", ev.Action, err)
	}
}

// Create books one or more rooms for a guest in a single transaction.
func (h *ReservationHandler) Create(c echo.Context) error {
	empID, err := employeeID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.GuestID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "guest_id required"})
	}
	if req.NumPeople == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "num_people must be positive"})
	}
	if req.TotalCostCents < 0 || req.PaymentCents < 0 || req.DiscountCents < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amounts must not be negative"})
	}
	checkIn, err := time.Parse("2006-01-02", req.CheckIn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in must be YYYY-MM-DD"})
	}
	checkOut, err := time.Parse("2006-01-02", req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be YYYY-MM-DD"})
	}
	if !checkOut.After(checkIn) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be after check_in"})
	}
	roomIDs := dedupeIDs(req.RoomIDs)
	if len(roomIDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": repository.ErrNoRooms.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	resID, err := h.Reservations.Create(ctx, repository.CreateParams{
		GuestID:        req.GuestID,
		EmployeeID:     empID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		NumPeople:      req.NumPeople,
		Status:         req.Status,
		TotalCostCents: req.TotalCostCents,
		PaymentCents:   req.PaymentCents,
		DiscountCents:  req.DiscountCents,
		RoomIDs:        roomIDs,
	})
	if err != nil {
		var notFound *repository.RoomsNotFoundError
		var unavailable *repository.RoomsUnavailableError
		switch {
		case errors.Is(err, repository.ErrNoRooms):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.As(err, &notFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "rooms not found", "room_ids": notFound.IDs})
		case errors.As(err, &unavailable):
			return c.JSON(http.StatusConflict, echo.Map{"error": "rooms not available", "room_ids": unavailable.IDs})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
	}

	publish(queue.ReservationEvent{
		Action:         queue.ActionBooked,
		ReservationID:  resID,
		GuestID:        req.GuestID,
		EmployeeID:     empID,
		RoomIDs:        roomIDs,
		CheckIn:        req.CheckIn,
		CheckOut:       req.CheckOut,
		TotalCostCents: req.TotalCostCents,
		OccurredAt:     time.Now().UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusCreated, echo.Map{"id": resID})
}

// Cancel voids a booking and frees its rooms.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	return h.terminate(c, model.ReservationCanceled)
}

// Finish records a check-out and frees the rooms.
func (h *ReservationHandler) Finish(c echo.Context) error {
	return h.terminate(c, model.ReservationFinished)
}

func (h *ReservationHandler) terminate(c echo.Context, status string) error {
	empID, err := employeeID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if status == model.ReservationCanceled {
		err = h.Reservations.Cancel(ctx, id)
	} else {
		err = h.Reservations.Finish(ctx, id)
	}
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	action := queue.ActionCanceled
	if status == model.ReservationFinished {
		action = queue.ActionFinished
	}
	publish(queue.ReservationEvent{
		Action:        action,
		ReservationID: id,
		EmployeeID:    empID,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": status})
}

type paymentReq struct {
	AmountCents int64 `json:"amount_cents"`
}

// AddPayment accumulates a payment onto a reservation.
func (h *ReservationHandler) AddPayment(c echo.Context) error {
	empID, err := employeeID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req paymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.AmountCents <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount_cents must be positive"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Reservations.AddPayment(ctx, id, req.AmountCents); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment failed"})
	}

	publish(queue.ReservationEvent{
		Action:        queue.ActionPayment,
		ReservationID: id,
		EmployeeID:    empID,
		AmountCents:   req.AmountCents,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusOK, echo.Map{"id": id, "amount_cents": req.AmountCents})
}

// Get returns one reservation with its room numbers.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	roomIDs, err := h.Reservations.RoomIDsFor(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":               res.ID,
		"guest_id":         res.GuestID,
		"employee_id":      res.EmployeeID,
		"check_in":         res.CheckIn.Format("2006-01-02"),
		"check_out":        res.CheckOut.Format("2006-01-02"),
		"booking_date":     res.BookingDate.Format("2006-01-02"),
		"num_people":       res.NumPeople,
		"status":           res.Status,
		"total_cost_cents": res.TotalCostCents,
		"payment_cents":    res.PaymentCents,
		"discount_cents":   res.DiscountCents,
		"room_ids":         roomIDs,
	})
}

// ListActive returns the active-reservation board.
func (h *ReservationHandler) ListActive(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	summaries, err := h.Reservations.ListActive(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": summaries})
}
