package kvstore

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/jhoicas/intellicrm-core/internal/domain/repository"
)

var _ repository.KeyValueStore = (*SQLite)(nil)

// SQLite implementación durable de KeyValueStore sobre un único archivo
// SQLite embebido (driver puro Go, sin cgo). Es el análogo local del
// localStorage del navegador: una tabla kv con una fila por clave.
type SQLite struct {
	db *sql.DB
}

// NewSQLite abre (o crea) el archivo de base de datos en path y garantiza el
// esquema. path ":memory:" también funciona para pruebas rápidas.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	// El driver es embebido y la capa de datos es de escritor único:
	// una sola conexión evita SQLITE_BUSY sin necesidad de WAL.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key   TEXT PRIMARY KEY,
			value BLOB NOT NULL
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("crear esquema kv: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Get devuelve el valor bajo key y si la clave existe.
func (s *SQLite) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("leer clave %q: %w", key, err)
	}
	return value, true, nil
}

// Set escribe el valor completo bajo key, reemplazando el anterior.
func (s *SQLite) Set(key string, value []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("escribir clave %q: %w", key, err)
	}
	return nil
}

// Delete elimina la clave (no-op si no existe).
func (s *SQLite) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("borrar clave %q: %w", key, err)
	}
	return nil
}

// Close cierra la base de datos.
func (s *SQLite) Close() error {
	return s.db.Close()
}
