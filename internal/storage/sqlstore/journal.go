// Package sqlstore holds the journal queries shared by the SQLite and
// PostgreSQL providers. Only the placeholder format differs between them.
package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/julianstephens/mori/internal/models"
	"github.com/julianstephens/mori/internal/storage"
)

const (
	TableJournal = "journal_entries"

	// timestampLayout is fixed-width UTC so that lexical order matches time order.
	timestampLayout = "2006-01-02T15:04:05.000000000Z"
)

var journalColumns = []string{"id", "day", "date", "text", "updated_at"}

type entryRow struct {
	ID        string `db:"id"`
	Day       string `db:"day"`
	Date      string `db:"date"`
	Text      string `db:"text"`
	UpdatedAt string `db:"updated_at"`
}

func toRow(e models.GratitudeEntry) entryRow {
	return entryRow{
		ID:        e.ID,
		Day:       e.Day,
		Date:      FormatTimestamp(e.Date),
		Text:      e.Text,
		UpdatedAt: FormatTimestamp(e.UpdatedAt),
	}
}

func (r entryRow) toEntry() (models.GratitudeEntry, error) {
	date, err := ParseTimestamp(r.Date)
	if err != nil {
		return models.GratitudeEntry{}, fmt.Errorf("entry %s: invalid date: %w", r.ID, err)
	}
	updated, err := ParseTimestamp(r.UpdatedAt)
	if err != nil {
		return models.GratitudeEntry{}, fmt.Errorf("entry %s: invalid updated_at: %w", r.ID, err)
	}
	return models.GratitudeEntry{
		ID:        r.ID,
		Day:       r.Day,
		Date:      date,
		Text:      r.Text,
		UpdatedAt: updated,
	}, nil
}

// FormatTimestamp renders t the way journal rows store it.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// ParseTimestamp reads a stored timestamp. RFC 3339 values are accepted too so
// rows edited by hand still load.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(timestampLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

// ErrorSqlBuild wraps a query-builder failure.
func ErrorSqlBuild(err error) error {
	return fmt.Errorf("failed to build sql: %w", err)
}

// JournalTable runs journal queries against one database handle.
type JournalTable struct {
	db      *sqlx.DB
	builder sq.StatementBuilderType
}

// NewJournalTable binds the journal queries to db using the given placeholder
// format (sq.Question for SQLite, sq.Dollar for PostgreSQL).
func NewJournalTable(db *sqlx.DB, format sq.PlaceholderFormat) *JournalTable {
	return &JournalTable{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(format),
	}
}

func (t *JournalTable) Insert(e models.GratitudeEntry) error {
	row := toRow(e)
	query := t.builder.Insert(TableJournal).
		Columns(journalColumns...).
		Values(row.ID, row.Day, row.Date, row.Text, row.UpdatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	if _, err := t.db.Exec(queryString, args...); err != nil {
		return fmt.Errorf("failed to insert entry for %s: %w", e.Day, err)
	}
	return nil
}

func (t *JournalTable) Update(e models.GratitudeEntry) error {
	row := toRow(e)
	query := t.builder.Update(TableJournal).
		Set("text", row.Text).
		Set("updated_at", row.UpdatedAt).
		Where(sq.Eq{"id": row.ID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	res, err := t.db.Exec(queryString, args...)
	if err != nil {
		return fmt.Errorf("failed to update entry %s: %w", e.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update of entry %s: %w", e.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("entry %s: %w", e.ID, storage.ErrNotFound)
	}
	return nil
}

func (t *JournalTable) GetByDay(day string) (models.GratitudeEntry, error) {
	query := t.builder.Select(journalColumns...).From(TableJournal).Where(sq.Eq{"day": day})

	queryString, args, err := query.ToSql()
	if err != nil {
		return models.GratitudeEntry{}, ErrorSqlBuild(err)
	}

	var row entryRow
	if err := t.db.Get(&row, queryString, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.GratitudeEntry{}, fmt.Errorf("day %s: %w", day, storage.ErrNotFound)
		}
		return models.GratitudeEntry{}, err
	}
	return row.toEntry()
}

func (t *JournalTable) List() ([]models.GratitudeEntry, error) {
	return t.list(t.builder.Select(journalColumns...).From(TableJournal))
}

func (t *JournalTable) Range(startDay, endDay string) ([]models.GratitudeEntry, error) {
	return t.list(t.builder.Select(journalColumns...).From(TableJournal).
		Where(sq.And{sq.GtOrEq{"day": startDay}, sq.LtOrEq{"day": endDay}}))
}

func (t *JournalTable) Count() (int, error) {
	queryString, args, err := t.builder.Select("COUNT(*)").From(TableJournal).ToSql()
	if err != nil {
		return 0, ErrorSqlBuild(err)
	}
	var n int
	if err := t.db.Get(&n, queryString, args...); err != nil {
		return 0, err
	}
	return n, nil
}

func (t *JournalTable) list(query sq.SelectBuilder) ([]models.GratitudeEntry, error) {
	queryString, args, err := query.OrderBy("date DESC").ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var rows []entryRow
	if err := t.db.Select(&rows, queryString, args...); err != nil {
		return nil, err
	}

	entries := make([]models.GratitudeEntry, 0, len(rows))
	for _, r := range rows {
		e, err := r.toEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
