package repository

// KeyValueStore define el puerto de persistencia de la capa de datos: un
// almacén clave-valor local donde cada colección se guarda serializada como
// JSON bajo una clave fija. Durabilidad y cuotas son responsabilidad del
// adaptador, no de esta capa.
type KeyValueStore interface {
	// Get devuelve el valor bajo key. El segundo resultado indica si la clave
	// existe: (nil, false, nil) significa "nunca escrita", no error.
	Get(key string) ([]byte, bool, error)
	// Set escribe el valor completo bajo key, reemplazando el anterior.
	Set(key string, value []byte) error
	// Delete elimina la clave; eliminar una clave inexistente no es error.
	Delete(key string) error
	// Close libera los recursos del adaptador.
	Close() error
}
