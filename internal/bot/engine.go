package bot

import (
    "context"
    "errors"
    "fmt"
    "strings"

    "github.com/sabahotel/backoffice/internal/auth"
    "github.com/sabahotel/backoffice/internal/model"
    "github.com/sabahotel/backoffice/internal/repository"
)

// Verifier resolves a username/secret pair to an employee.
// *auth.Authenticator satisfies it.
type Verifier interface {
    Authenticate(ctx context.Context, username, secret string) (model.Employee, error)
}

// Inventory lists rooms by state.  *repository.RoomRepo satisfies it.
type Inventory interface {
    ListByStatus(ctx context.Context, status string) ([]model.Room, error)
}

// Board lists active reservations.  *repository.ReservationRepo
// satisfies it.
type Board interface {
    ListActive(ctx context.Context) ([]repository.ReservationSummary, error)
}

// Counter aggregates room status counts.  *repository.StatsRepo
// satisfies it.
type Counter interface {
    RoomStatus(ctx context.Context) (repository.RoomStatusCounts, error)
}

// Engine drives the chat conversation.  It is stateless itself; all
// per-chat state lives in Sessions.
type Engine struct {
    Sessions     SessionStore
    Auth         Verifier
    Rooms        Inventory
    Reservations Board
    Stats        Counter
    DashboardURL string
}

// Reply is what the gateway returns for one incoming message.  Keyboard
// lists suggested inputs the front-end may render as buttons.
type Reply struct {
    Text     string   `json:"text"`
    Keyboard []string `json:"keyboard,omitempty"`
}

var loginKeyboard = []string{"login"}
var menuKeyboard = []string{"status", "available", "cleaning", "active", "dashboard", "logout"}

// Handle processes one incoming message for a chat and returns the
// reply.  It loads the session, advances the login conversation or
// dispatches the menu command, and stores the updated session.
func (e *Engine) Handle(ctx context.Context, chatID int64, text string) (Reply, error) {
    sess, err := e.Sessions.Get(ctx, chatID)
    if err != nil {
        return Reply{}, err
    }
    input := strings.TrimSpace(text)

    switch sess.State {
    case StateAwaitUsername:
        sess.Username = input
        sess.State = StateAwaitPassword
        if err := e.Sessions.Put(ctx, chatID, sess); err != nil {
            return Reply{}, err
        }
        return Reply{Text: "Enter your password:"}, nil

    case StateAwaitPassword:
        emp, authErr := e.Auth.Authenticate(ctx, sess.Username, input)
        if authErr != nil {
            if !errors.Is(authErr, auth.ErrInvalidCredentials) {
                return Reply{}, authErr
            }
            sess = Session{State: StateAwaitUsername}
            if err := e.Sessions.Put(ctx, chatID, sess); err != nil {
                return Reply{}, err
            }
            return Reply{Text: "Invalid username or password.\nEnter your username:"}, nil
        }
        sess = Session{State: StateLoggedIn, Username: emp.Username, EmployeeID: emp.ID}
        if err := e.Sessions.Put(ctx, chatID, sess); err != nil {
            return Reply{}, err
        }
        return Reply{
            Text:     fmt.Sprintf("Welcome, %s %s! What do you need?", emp.Name, emp.Family),
            Keyboard: menuKeyboard,
        }, nil

    case StateLoggedIn:
        return e.command(ctx, chatID, strings.ToLower(input))

    default: // logged out
        switch strings.ToLower(input) {
        case "/start", "login":
            sess = Session{State: StateAwaitUsername}
            if err := e.Sessions.Put(ctx, chatID, sess); err != nil {
                return Reply{}, err
            }
            return Reply{Text: "Enter your username:"}, nil
        }
        return Reply{Text: "You are not logged in. Send \"login\" to start.", Keyboard: loginKeyboard}, nil
    }
}

// command dispatches a menu command for a logged-in chat.
func (e *Engine) command(ctx context.Context, chatID int64, cmd string) (Reply, error) {
    switch cmd {
    case "status":
        counts, err := e.Stats.RoomStatus(ctx)
        if err != nil {
            return Reply{}, err
        }
        return Reply{Text: renderStatus(counts), Keyboard: menuKeyboard}, nil

    case "available":
        rooms, err := e.Rooms.ListByStatus(ctx, model.RoomAvailable)
        if err != nil {
            return Reply{}, err
        }
        return Reply{Text: renderRooms("Available rooms", rooms, true), Keyboard: menuKeyboard}, nil

    case "cleaning":
        rooms, err := e.Rooms.ListByStatus(ctx, model.RoomCleaning)
        if err != nil {
            return Reply{}, err
        }
        return Reply{Text: renderRooms("Rooms being cleaned", rooms, false), Keyboard: menuKeyboard}, nil

    case "active":
        list, err := e.Reservations.ListActive(ctx)
        if err != nil {
            return Reply{}, err
        }
        return Reply{Text: renderActive(list), Keyboard: menuKeyboard}, nil

    case "dashboard":
        if e.DashboardURL == "" {
            return Reply{Text: "No dashboard link is configured.", Keyboard: menuKeyboard}, nil
        }
        return Reply{Text: "Dashboard: " + e.DashboardURL, Keyboard: menuKeyboard}, nil

    case "logout":
        if err := e.Sessions.Delete(ctx, chatID); err != nil {
            return Reply{}, err
        }
        return Reply{Text: "Logged out. Send \"login\" to start again.", Keyboard: loginKeyboard}, nil

    default:
        return Reply{Text: "Pick one of: status, available, cleaning, active, dashboard, logout.", Keyboard: menuKeyboard}, nil
    }
}

func renderStatus(c repository.RoomStatusCounts) string {
    var b strings.Builder
    b.WriteString("Hotel status\n")
    fmt.Fprintf(&b, "• Rooms: %d total\n", c.Total)
    fmt.Fprintf(&b, "• Available: %d\n", c.Available)
    fmt.Fprintf(&b, "• Reserved: %d\n", c.Reserved)
    fmt.Fprintf(&b, "• Occupied: %d\n", c.Occupied)
    fmt.Fprintf(&b, "• Cleaning: %d\n", c.Cleaning)
    fmt.Fprintf(&b, "• Active reservations: %d", c.ActiveReservations)
    return b.String()
}

func renderRooms(title string, rooms []model.Room, withPrice bool) string {
    if len(rooms) == 0 {
        return title + ": none."
    }
    var b strings.Builder
    b.WriteString(title + "\n")
    for _, rm := range rooms {
        fmt.Fprintf(&b, "• Room %d | floor %d | %s | bed: %s | sleeps %d", rm.ID, rm.Floor, rm.Type, rm.BedType, rm.Capacity)
        if withPrice {
            fmt.Fprintf(&b, " | %s/night", formatCents(rm.PriceCents))
        }
        b.WriteString("\n")
    }
    return strings.TrimRight(b.String(), "\n")
}

func renderActive(list []repository.ReservationSummary) string {
    if len(list) == 0 {
        return "No active reservations."
    }
    var b strings.Builder
    b.WriteString("Active reservations\n")
    for _, r := range list {
        fmt.Fprintf(&b, "• #%d %s %s | %s -> %s | rooms %s | paid %s of %s\n",
            r.ID, r.GuestName, r.GuestFamily, r.CheckIn, r.CheckOut,
            joinIDs(r.RoomIDs), formatCents(r.PaymentCents), formatCents(r.TotalCostCents))
    }
    return strings.TrimRight(b.String(), "\n")
}

func joinIDs(ids []uint64) string {
    if len(ids) == 0 {
        return "-"
    }
    parts := make([]string, len(ids))
    for i, id := range ids {
        parts[i] = fmt.Sprintf("%d", id)
    }
    return strings.Join(parts, ",")
}

// formatCents renders integer cents as a dollar amount.
func formatCents(cents int64) string {
    sign := ""
    if cents < 0 {
        sign = "-"
        cents = -cents
    }
    return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
