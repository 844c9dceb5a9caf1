package repository

// CounterRepository asigna consecutivos para numeración de documentos
// (movimientos, producciones). Next debe invocarse dentro de la transacción
// que confirma el documento: un rollback devuelve el número, de modo que los
// lotes confirmados quedan sin huecos.
type CounterRepository interface {
	Next(name string) (int64, error)
}
