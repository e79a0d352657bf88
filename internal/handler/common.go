package handler // handler defines http handlers

import (
    "errors"  // errors provides sentinel values used in employeeID
    "strconv" // strconv converts strings to numeric types

    "github.com/labstack/echo/v4" // echo defines request context types
)

// employeeID extracts the authenticated employee id from echo.Context
// and converts it to uint64.  JWTAuth stores the sub claim under
// "emp_id"; JWT numeric claims decode as float64 but direct c.Set
// calls in tests may use integer types.
func employeeID(c echo.Context) (uint64, error) {
    v := c.Get("emp_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid emp_id in context")
}

// pathID parses a numeric :param path segment.
func pathID(c echo.Context, name string) (uint64, error) {
    return strconv.ParseUint(c.Param(name), 10, 64)
}
