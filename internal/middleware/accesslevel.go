package middleware // middleware provides shared request processing for handlers

import (
    "net/http" // http package defines standard HTTP status codes

    "github.com/labstack/echo/v4" // echo provides middleware chaining and context
)

// RequireAccessLevel returns a middleware that enforces a minimum
// permission tier on the authenticated employee.  Tiers run 1 (lowest)
// through 5 (admin); the value comes from the JWT's "access_level"
// claim, which JWTAuth stores in the context.  Requests below the
// threshold are aborted with 403 Forbidden.
func RequireAccessLevel(min int) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            level, ok := accessLevel(c)
            if !ok || level < min {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
            return next(c)
        }
    }
}

// accessLevel reads the access_level claim from the context.  JWT
// claims decode JSON numbers as float64, but direct c.Set calls in
// tests may store ints; accept both.
func accessLevel(c echo.Context) (int, bool) {
    switch v := c.Get("access_level").(type) {
    case float64:
        return int(v), true
    case int:
        return v, true
    case uint8:
        return int(v), true
    }
    return 0, false
}
