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

// EmployeeHandler exposes staff account management.  Routes using it
// sit behind the access-level middleware; only senior staff reach
// these endpoints.
type EmployeeHandler struct {
	Employees *repository.EmployeeRepo
}

func NewEmployeeHandler(e *repository.EmployeeRepo) *EmployeeHandler {
	return &EmployeeHandler{Employees: e}
}

type createEmployeeReq struct {
	Name        string `json:"name"`
	Family      string `json:"family"`
	NationalID  string `json:"national_id"`
	Birthdate   string `json:"birthdate"` // YYYY-MM-DD
	Position    string `json:"position"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	AccessLevel uint8  `json:"access_level"`
}

// Create registers a staff account.  The password is hashed before it
// is stored.
func (h *EmployeeHandler) Create(c echo.Context) error {
	var req createEmployeeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Name == "" || req.Family == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/family/username required"})
	}
	if len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 6 characters"})
	}
	if req.AccessLevel < 1 || req.AccessLevel > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "access_level must be 1-5"})
	}
	birthdate, err := time.Parse("2006-01-02", req.Birthdate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "birthdate must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Employees.Create(ctx, model.Employee{
		Name:        req.Name,
		Family:      req.Family,
		NationalID:  req.NationalID,
		Birthdate:   birthdate,
		Position:    req.Position,
		Username:    req.Username,
		AccessLevel: req.AccessLevel,
	}, req.Password)
	if err != nil {
		if err == repository.ErrUsernameExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create employee failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// List returns all staff accounts without credential records.
func (h *EmployeeHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	employees, err := h.Employees.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]employeePart, 0, len(employees))
	for _, e := range employees {
		out = append(out, toEmployeePart(e))
	}
	return c.JSON(http.StatusOK, echo.Map{"employees": out})
}

// Get returns one staff account.
func (h *EmployeeHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid employee id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	emp, err := h.Employees.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "employee not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toEmployeePart(emp))
}
