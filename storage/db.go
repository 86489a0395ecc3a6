package storage

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	*sql.DB
}

// TradeRecord is one row of the append-only per-user trade log.
type TradeRecord struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"user_id"`
	TradeType string  `json:"trade_type"` // "buy" or "sell"
	Token     string  `json:"token"`
	Amount    float64 `json:"amount"`
	Price     float64 `json:"price"`
	Profit    float64 `json:"profit"`
	Success   bool    `json:"success"`
	CreatedAt int64   `json:"created_at"`
}

func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	dbInstance := &DB{db}

	// Configure connection pool
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := dbInstance.initSchema(); err != nil {
		return nil, err
	}

	return dbInstance, nil
}

func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		user_id INTEGER PRIMARY KEY,
		data TEXT NOT NULL,
		updated_at INTEGER
	);

	CREATE TABLE IF NOT EXISTS trade_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		trade_type TEXT,
		token TEXT,
		amount REAL,
		price REAL,
		profit REAL,
		success INTEGER,
		created_at INTEGER
	);

	CREATE INDEX IF NOT EXISTS idx_trade_log_user ON trade_log(user_id, created_at);
	`

	_, err := db.Exec(schema)
	return err
}

// SaveSession upserts the serialized session record for a user.
func (db *DB) SaveSession(userID int64, data []byte) error {
	_, err := db.Exec(`
		INSERT INTO sessions (user_id, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`, userID, string(data), time.Now().Unix())
	return err
}

// LoadSession returns the stored session blob, or nil when the user is unknown.
func (db *DB) LoadSession(userID int64) ([]byte, error) {
	var data string
	err := db.QueryRow(`SELECT data FROM sessions WHERE user_id = ?`, userID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}

// AppendTrade appends to the per-user trade log. Rows are never updated.
func (db *DB) AppendTrade(rec *TradeRecord) error {
	if rec.CreatedAt == 0 {
		rec.CreatedAt = time.Now().Unix()
	}

	res, err := db.Exec(`
		INSERT INTO trade_log (user_id, trade_type, token, amount, price, profit, success, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.UserID, rec.TradeType, rec.Token, rec.Amount, rec.Price, rec.Profit, rec.Success, rec.CreatedAt)
	if err != nil {
		return err
	}

	rec.ID, _ = res.LastInsertId()
	return nil
}

// RecentTrades returns the newest trades for a user, newest first.
func (db *DB) RecentTrades(userID int64, limit int) ([]*TradeRecord, error) {
	rows, err := db.Query(`
		SELECT id, user_id, trade_type, token, amount, price, profit, success, created_at
		FROM trade_log
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []*TradeRecord
	for rows.Next() {
		var t TradeRecord
		if err := rows.Scan(&t.ID, &t.UserID, &t.TradeType, &t.Token, &t.Amount,
			&t.Price, &t.Profit, &t.Success, &t.CreatedAt); err != nil {
			return nil, err
		}
		trades = append(trades, &t)
	}

	return trades, rows.Err()
}
