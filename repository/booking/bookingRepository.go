package bookingrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"shareit/model"
)

// View is a booking row joined with the names the API echoes back and the
// item's owner id, which the services need for authorization.
type View struct {
	model.Booking
	ItemName    string
	ItemOwnerID int64
	BookerName  string
}

// Short is the summary that decorates item views.
type Short struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

// Filter narrows a booking listing. Now is the instant the time-based states
// are evaluated against; From/Size is an offset/limit window applied after
// ordering by id descending.
type Filter struct {
	State model.State
	Now   time.Time
	From  int
	Size  int
}

type Repo interface {
	Insert(ctx context.Context, b *model.Booking) error
	ByID(ctx context.Context, id int64) (*View, error)

	// Decide flips a WAITING booking to the given status. It reports false
	// when the booking was not in WAITING anymore, making the transition
	// atomic under concurrent approvals.
	Decide(ctx context.Context, id int64, to model.Status) (bool, error)

	ForBooker(ctx context.Context, bookerID int64, f Filter) ([]View, error)
	ForOwner(ctx context.Context, ownerID int64, f Filter) ([]View, error)

	NextForItem(ctx context.Context, itemID int64, now time.Time) (*Short, error)
	LastForItem(ctx context.Context, itemID int64, now time.Time) (*Short, error)
	HasPastForItem(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

const viewColumns = `
SELECT b.id, b.start_time, b.end_time, b.item_id, b.booker_id, b.status,
       i.name, i.owner_id, u.name
FROM bookings b
JOIN items i ON i.id = b.item_id
JOIN users u ON u.id = b.booker_id`

func (r *repo) Insert(ctx context.Context, b *model.Booking) error {
	const q = `
INSERT INTO bookings (start_time, end_time, item_id, booker_id, status)
VALUES ($1,$2,$3,$4,$5)
RETURNING id`
	return r.db.QueryRowContext(ctx, q, b.Start, b.End, b.ItemID, b.BookerID, b.Status).Scan(&b.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*View, error) {
	q := viewColumns + `
WHERE b.id=$1`
	v := &View{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&v.ID, &v.Start, &v.End, &v.ItemID, &v.BookerID, &v.Status,
		&v.ItemName, &v.ItemOwnerID, &v.BookerName,
	)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *repo) Decide(ctx context.Context, id int64, to model.Status) (bool, error) {
	const q = `
UPDATE bookings
SET status=$2
WHERE id=$1 AND status='WAITING'`
	res, err := r.db.ExecContext(ctx, q, id, to)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *repo) ForBooker(ctx context.Context, bookerID int64, f Filter) ([]View, error) {
	return r.list(ctx, `b.booker_id=$1`, bookerID, f)
}

// ForOwner joins through items: bookings do not store the owner directly.
func (r *repo) ForOwner(ctx context.Context, ownerID int64, f Filter) ([]View, error) {
	return r.list(ctx, `i.owner_id=$1`, ownerID, f)
}

// list composes the listing query from a perspective predicate and the state
// filter. Status is always matched by symbolic name.
func (r *repo) list(ctx context.Context, who string, id int64, f Filter) ([]View, error) {
	where := who
	args := []any{id}

	switch f.State {
	case model.StatePast:
		args = append(args, f.Now)
		where += fmt.Sprintf(" AND b.end_time < $%d", len(args))
	case model.StateFuture:
		args = append(args, f.Now)
		where += fmt.Sprintf(" AND b.start_time > $%d", len(args))
	case model.StateCurrent:
		args = append(args, f.Now)
		where += fmt.Sprintf(" AND b.start_time < $%d AND b.end_time > $%d", len(args), len(args))
	case model.StateWaiting, model.StateRejected:
		args = append(args, string(f.State))
		where += fmt.Sprintf(" AND b.status = $%d", len(args))
	case model.StateAll:
		// no extra predicate
	}

	args = append(args, f.From, f.Size)
	q := fmt.Sprintf(`%s
WHERE %s
ORDER BY b.id DESC
OFFSET $%d LIMIT $%d`, viewColumns, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []View
	for rows.Next() {
		var v View
		if err := rows.Scan(
			&v.ID, &v.Start, &v.End, &v.ItemID, &v.BookerID, &v.Status,
			&v.ItemName, &v.ItemOwnerID, &v.BookerName,
		); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// NextForItem returns the future booking with the earliest start, lowest id
// breaking ties. Nil when the item has no future bookings.
func (r *repo) NextForItem(ctx context.Context, itemID int64, now time.Time) (*Short, error) {
	const q = `
SELECT id, booker_id
FROM bookings
WHERE item_id=$1 AND start_time > $2
ORDER BY start_time ASC, id ASC
LIMIT 1`
	return r.short(ctx, q, itemID, now)
}

// LastForItem returns the past booking with the latest end, highest id
// breaking ties. Nil when the item has no past bookings.
func (r *repo) LastForItem(ctx context.Context, itemID int64, now time.Time) (*Short, error) {
	const q = `
SELECT id, booker_id
FROM bookings
WHERE item_id=$1 AND end_time < $2
ORDER BY end_time DESC, id DESC
LIMIT 1`
	return r.short(ctx, q, itemID, now)
}

func (r *repo) short(ctx context.Context, q string, itemID int64, now time.Time) (*Short, error) {
	s := &Short{}
	err := r.db.QueryRowContext(ctx, q, itemID, now).Scan(&s.ID, &s.BookerID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *repo) HasPastForItem(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	const q = `
SELECT EXISTS (
  SELECT 1 FROM bookings
  WHERE booker_id=$1 AND item_id=$2 AND end_time < $3
)`
	var ok bool
	err := r.db.QueryRowContext(ctx, q, bookerID, itemID, now).Scan(&ok)
	return ok, err
}
