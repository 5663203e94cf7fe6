// Package model defines the persistent record types and the table metadata
// the generic repository needs to build statements for them.
package model

import "time"

// ShortedURL is a shortened URL. Records are never hard-deleted through the
// API; the Deleted flag marks them gone while keeping their usage history.
type ShortedURL struct {
	ID        int64     `db:"id"         json:"id"`
	Value     string    `db:"value"      json:"value"`
	Original  string    `db:"original"   json:"original"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	Deleted   bool      `db:"deleted"    json:"deleted"`
}

func (ShortedURL) TableName() string { return "shorted_url" }

func (ShortedURL) Columns() []string {
	return []string{"id", "value", "original", "created_at", "deleted"}
}

func (ShortedURL) InsertColumns() []string { return []string{"value", "original"} }

func (u ShortedURL) InsertValues() []any { return []any{u.Value, u.Original} }

// ShortedURLInfo is one recorded access against a short URL. Rows are only
// ever created (one per redirect) and removed by the cascade when their
// parent URL or user goes away.
type ShortedURLInfo struct {
	ID        int64     `db:"id"         json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	Host      string    `db:"host"       json:"host"`
	Port      int       `db:"port"       json:"port"`
	UserAgent string    `db:"user_agent" json:"user_agent"`
	URLID     int64     `db:"url_id"     json:"url_id"`
	UserID    *int64    `db:"user_id"    json:"user_id,omitempty"`
}

func (ShortedURLInfo) TableName() string { return "shorted_url_info" }

func (ShortedURLInfo) Columns() []string {
	return []string{"id", "created_at", "host", "port", "user_agent", "url_id", "user_id"}
}

func (ShortedURLInfo) InsertColumns() []string {
	return []string{"host", "port", "user_agent", "url_id", "user_id"}
}

func (i ShortedURLInfo) InsertValues() []any {
	return []any{i.Host, i.Port, i.UserAgent, i.URLID, i.UserID}
}

// User exists in the schema for usage attribution; no handler exposes it yet.
// The password never appears in serialized output.
type User struct {
	ID        int64     `db:"id"         json:"id"`
	Username  string    `db:"username"   json:"username"`
	Password  string    `db:"password"   json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func (User) TableName() string { return "users" }

func (User) Columns() []string {
	return []string{"id", "username", "password", "created_at"}
}

func (User) InsertColumns() []string { return []string{"username", "password"} }

func (u User) InsertValues() []any { return []any{u.Username, u.Password} }

// BlacklistedClient bans a host. A nil Until blocks indefinitely; expired
// rows are kept, whether they still block is the gate's policy decision.
type BlacklistedClient struct {
	ID    int64      `db:"id"    json:"id"`
	Host  string     `db:"host"  json:"host"`
	Until *time.Time `db:"until" json:"until,omitempty"`
}

func (BlacklistedClient) TableName() string { return "blacklisted_client" }

func (BlacklistedClient) Columns() []string { return []string{"id", "host", "until"} }

func (BlacklistedClient) InsertColumns() []string { return []string{"host", "until"} }

func (c BlacklistedClient) InsertValues() []any { return []any{c.Host, c.Until} }
